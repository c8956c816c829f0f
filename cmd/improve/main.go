package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/jorge-barreto/improve/internal/catalog"
	"github.com/jorge-barreto/improve/internal/config"
	"github.com/jorge-barreto/improve/internal/docs"
	"github.com/jorge-barreto/improve/internal/fixer"
	"github.com/jorge-barreto/improve/internal/render"
	"github.com/jorge-barreto/improve/internal/runner"
	"github.com/jorge-barreto/improve/internal/scaffold"
	"github.com/jorge-barreto/improve/internal/watch"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "improve",
		Usage:       "Audit a design-pattern documentation tree",
		Description: "Scans the tree, runs the structure, consistency, completeness, and freshness checks in parallel, and renders a graded report. Finding issues is a successful run; only operational failures exit non-zero.",
		Flags:       auditFlags(),
		Action:      auditAction,
		Commands: []*cli.Command{
			watchCmd(),
			catalogsCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func auditFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "check", Usage: "Check only, print the report (default)"},
		&cli.BoolFlag{Name: "fix", Usage: "Apply deterministic fixes, then re-validate"},
		&cli.BoolFlag{Name: "report", Usage: "Write the full markdown report to disk"},
		&cli.BoolFlag{Name: "structure", Usage: "Run only the structure checks"},
		&cli.BoolFlag{Name: "freshness", Usage: "Run only the freshness assessment"},
		&cli.BoolFlag{Name: "missing", Usage: "Run only the catalog completeness comparison"},
		&cli.StringFlag{Name: "category", Usage: "Restrict the audit to one category directory"},
		&cli.StringFlag{Name: "root", Value: ".", Usage: "Documentation tree root"},
		&cli.DurationFlag{Name: "timeout", Usage: "Global run timeout (partial report on expiry)"},
		&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
	}
}

func flagsFrom(cmd *cli.Command) config.Flags {
	return config.Flags{
		Check:     cmd.Bool("check"),
		Fix:       cmd.Bool("fix"),
		Report:    cmd.Bool("report"),
		Structure: cmd.Bool("structure"),
		Freshness: cmd.Bool("freshness"),
		Missing:   cmd.Bool("missing"),
		Category:  cmd.String("category"),
		Root:      cmd.String("root"),
		Timeout:   cmd.Duration("timeout"),
		NoColor:   cmd.Bool("no-color"),
	}
}

func setup(cmd *cli.Command) (*config.RunConfig, *runner.Runner, error) {
	flags := flagsFrom(cmd)
	fc, err := config.Load(flags.Root)
	if err != nil {
		return nil, nil, err
	}
	rc, err := config.FromFlags(flags, fc)
	if err != nil {
		return nil, nil, err
	}
	if rc.NoColor {
		render.SetColor(false)
	}

	catalogs, err := catalog.Load()
	if err != nil {
		return nil, nil, err
	}
	return rc, &runner.Runner{Config: rc, Catalogs: catalogs}, nil
}

func auditAction(ctx context.Context, cmd *cli.Command) error {
	rc, r, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	rep, err := r.Run(ctx)
	if err != nil {
		return err
	}

	switch rc.Mode {
	case config.ModeFix:
		actions := fixer.Plan(rep, r.Files(), rc.Root)
		res, err := fixer.NewApplier().Apply(ctx, actions)
		if err != nil {
			return fmt.Errorf("applying fixes: %w", err)
		}
		render.FixSummary(os.Stdout, res)

		// re-validate: a second pass over the fixed tree
		rep, err = r.Run(ctx)
		if err != nil {
			return err
		}
		render.Console(os.Stdout, rep)
	case config.ModeReport:
		render.Console(os.Stdout, rep)
		path := filepath.Join(rc.Root, rc.ReportFile)
		if err := render.WriteMarkdown(rep, path); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("report written to %s\n", path)
	default:
		render.Console(os.Stdout, rep)
	}
	return nil
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-run the audit whenever the tree changes",
		Flags: append(auditFlags(),
			&cli.DurationFlag{Name: "quiet", Value: watch.DefaultQuiet, Usage: "Debounce window before re-auditing"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rc, r, err := setup(cmd)
			if err != nil {
				return err
			}
			if rc.Mode == config.ModeFix {
				return fmt.Errorf("watch does not support --fix; run fixes as a one-shot")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			audit := func() {
				rep, err := r.Run(ctx)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
					return
				}
				render.Console(os.Stdout, rep)
			}

			audit()
			return watch.Run(ctx, rc.Root, cmd.Duration("quiet"), audit)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Seed the templates and example config in a documentation root",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Value: ".", Usage: "Documentation tree root"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return scaffold.Init(cmd.String("root"))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'improve docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

func catalogsCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalogs",
		Usage: "List the embedded reference catalogs",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set, err := catalog.Load()
			if err != nil {
				return err
			}
			fmt.Printf("\n%d reference patterns:\n\n", set.Len())
			for _, name := range set.Names() {
				fmt.Printf("  %-12s %d patterns\n", name, set.Count(name))
			}
			fmt.Println()
			return nil
		},
	}
}
