package issue

// Severity ranks how much an issue hurts the completeness score.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return "unknown"
}

// Kind identifies which check produced an issue.
type Kind int

const (
	MissingSection Kind = iota
	TableShape
	BrokenLink
	UnknownPatternReference
)

func (k Kind) String() string {
	switch k {
	case MissingSection:
		return "missing-section"
	case TableShape:
		return "table-shape"
	case BrokenLink:
		return "broken-link"
	case UnknownPatternReference:
		return "unknown-pattern-reference"
	}
	return "unknown"
}

// Issue is one finding against one file. Issues are immutable after creation;
// a file can carry several, and findings from different checkers are never
// deduplicated against each other.
type Issue struct {
	File     string // root-relative slash path
	Kind     Kind
	Severity Severity
	Detail   string
}

// Priority ranks a catalog gap.
type Priority int

const (
	PriorityMedium Priority = iota
	PriorityHigh
)

func (p Priority) String() string {
	if p == PriorityHigh {
		return "high"
	}
	return "medium"
}

// MissingPattern is a catalog entry with no documented pattern file.
type MissingPattern struct {
	Name          string
	Category      string
	Priority      Priority
	SourceCatalog string
}
