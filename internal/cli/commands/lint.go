package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/schema"
)

// errLintFailed is returned when lint finds errors; the problems are
// already printed.
var errLintFailed = errors.New("schema has errors")

func newLintCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "lint SCHEMA",
		Short: "Check a schema for problems",
		Long: `Check a schema for dangling references, name collisions, inheritance
cycles and questionable slot definitions. Exits non-zero when an error is
found; warnings are reported but do not fail the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.loadSchema(args[0])
			if err != nil {
				return err
			}

			problems := schema.Lint(s)
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				ui.WriteSuccess(out, fmt.Sprintf("%s: no problems found", args[0]), e.noColor)
				return nil
			}

			red := color.New(color.FgRed)
			yellow := color.New(color.FgYellow)
			if e.noColor {
				red.DisableColor()
				yellow.DisableColor()
			}

			errorCount := 0
			for _, p := range problems {
				c := yellow
				if p.Severity == schema.SeverityError {
					c = red
					errorCount++
				}
				c.Fprintln(out, p.String())
			}
			fmt.Fprintf(out, "\n%d problems (%d errors, %d warnings)\n",
				len(problems), errorCount, len(problems)-errorCount)

			if schema.HasErrors(problems) {
				return &renderedError{err: errLintFailed}
			}
			return nil
		},
	}
}
