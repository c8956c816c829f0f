package freshness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandOracle shells out to a configured command for each query, passing the
// pattern through environment variables. The command prints a single verdict
// word ("current" or "outdated") on stdout. This is how a web-search or LLM
// backend is plugged in without the core knowing about either.
type CommandOracle struct {
	Command string // run via bash -c
	WorkDir string
}

func (o *CommandOracle) Query(ctx context.Context, pattern, category string) (Verdict, error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", o.Command)
	cmd.Dir = o.WorkDir
	cmd.Env = append(os.Environ(),
		"IMPROVE_PATTERN="+pattern,
		"IMPROVE_CATEGORY="+category,
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return VerdictUnknown, fmt.Errorf("oracle command: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(firstLine(out.String()))) {
	case "current":
		return VerdictCurrent, nil
	case "outdated":
		return VerdictOutdated, nil
	default:
		return VerdictUnknown, nil
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
