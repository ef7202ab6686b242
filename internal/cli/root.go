// Package cli implements the pathinformatica command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/bootstrap"
	"github.com/pathlearn/pathinformatica/internal/config"
)

// RootOptions holds global flags shared by all commands, plus the lazy
// bootstrap hook. Commands that touch the store or progress call Boot;
// commands that only read embedded data do not.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Boot    func(context.Context) (bootstrap.Result, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. The bootstrapper is built on the
// first Boot call, after flag parsing, so --data-dir can override the
// environment.
func NewRootCommand(cfg config.Config) *cobra.Command {
	var (
		dataDir  string
		bootOnce sync.Once
		booter   *bootstrap.Bootstrapper
		bootErr  error
	)
	opts := &RootOptions{}
	opts.Boot = func(ctx context.Context) (bootstrap.Result, error) {
		bootOnce.Do(func() {
			if dataDir != "" {
				cfg.DataDir = dataDir
				if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
					bootErr = fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
					return
				}
			}
			booter = bootstrap.New(cfg)
		})
		if bootErr != nil {
			return bootstrap.Result{}, bootErr
		}
		return booter.Run(ctx)
	}

	cmd := &cobra.Command{
		Use:   "pathinformatica",
		Short: "PathInformatica - offline pathology informatics learning",
		Long: "An offline learning environment for pathology informatics:\n" +
			"modules, glossary, LOINC/SNOMED coding exercises, case workflow\n" +
			"walkthroughs, and self-assessment with locally persisted progress.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the database and progress snapshot")

	cmd.AddCommand(NewModulesCommand(opts))
	cmd.AddCommand(NewLessonCommand(opts))
	cmd.AddCommand(NewGlossaryCommand(opts))
	cmd.AddCommand(NewCodesCommand(opts))
	cmd.AddCommand(NewCasesCommand(opts))
	cmd.AddCommand(NewAssessCommand(opts))
	cmd.AddCommand(NewProgressCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewContentCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
