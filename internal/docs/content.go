package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quickstart",
		Summary: "First audit in two commands",
		Content: `
Quickstart
==========

Initialize the templates in your documentation root, then audit:

    improve init
    improve --root docs/

The default run checks everything and prints a graded summary. Nothing is
written; finding issues still exits 0. To persist the report:

    improve --report --root docs/

To apply the deterministic fixes (missing "Sources" and "Patterns lies"
stubs, missing category READMEs) and re-validate:

    improve --fix --root docs/
`,
	},
	{
		Name:    "scopes",
		Title:   "Scopes and phases",
		Summary: "Which checks run when",
		Content: `
Scopes and phases
=================

The scope is evaluated once into a static phase plan:

    (default)      structure, consistency, completeness, freshness
    --structure    structure only
    --missing      completeness only
    --freshness    freshness only

Phases run concurrently over a shared read-only inventory and join at the
aggregator. Consistency needs the whole inventory, so it only runs in the
full scope. --category <name> restricts the scanned set to one category
directory; an unknown name is a fatal error.
`,
	},
	{
		Name:    "scoring",
		Title:   "Scoring",
		Summary: "How the completeness score and grade are computed",
		Content: `
Scoring
=======

The score starts at 100 and subtracts:

    3    per high-severity issue
    1    per medium-severity issue
    0.5  per low-severity issue
    2    per high-priority missing pattern
    0.5  per medium-priority missing pattern

clamped to [0, 100]. Grades: A+ = 100, A = 90-99, B = 70-89, C = 50-69,
F below 50.

A missing pattern is high priority when some "Patterns lies" table already
references it, or a category README's decision table names it without a
link — both are demand signals.
`,
	},
	{
		Name:    "oracle",
		Title:   "Freshness oracle",
		Summary: "Plugging in a freshness backend",
		Content: `
Freshness oracle
================

Freshness is judged by an external command configured in improve.yaml:

    oracle-command: scripts/freshness-oracle.sh

The command runs once per pattern via bash with IMPROVE_PATTERN and
IMPROVE_CATEGORY in its environment, and prints one word on stdout:
"current" or "outdated". Anything else — including a timeout, a non-zero
exit, or no configured command at all — degrades that pattern's verdict to
"unknown". Oracle failures never fail the run.

Only categories with a high or medium evolution class are assessed; the
stable categories (principles, creational, structural, behavioral) are
skipped to bound cost. Override classes per category in improve.yaml:

    evolution:
      testing: high
`,
	},
	{
		Name:    "config",
		Title:   "Configuration",
		Summary: "improve.yaml reference",
		Content: `
Configuration
=============

improve.yaml at the tree root is optional. All keys:

    oracle-command: scripts/freshness-oracle.sh   # freshness backend
    oracle-timeout: 5          # seconds per oracle call
    freshness-wall: 120        # seconds for the whole freshness phase
    report-file: AUDIT-REPORT.md
    evolution:                 # per-category class overrides
      testing: high            # stable | medium | high
    exclude:                   # doublestar patterns, root-relative
      - "drafts/**"

CLI flags always win over the file for what they cover (mode, scope,
category, root, timeout).
`,
	},
	{
		Name:    "fixes",
		Title:   "Fixes",
		Summary: "What --fix will and will not touch",
		Content: `
Fixes
=====

--fix applies only deterministic template edits:

  - append a "Sources" stub to a file missing that section
  - append a "Patterns lies" table stub
  - create a missing category README.md from the template shape

It only ever adds; it never deletes or rewrites existing content. Broken
links, unknown pattern references, catalog gaps, and freshness findings are
always surfaced for manual review instead.

Each file is written atomically, and a file modified externally between the
scan and the write is skipped and listed as remaining. Re-running --fix on
an already-fixed tree is a no-op.
`,
	},
}
