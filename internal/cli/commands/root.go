package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/schemaprof/internal/cli/config"
	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags of the root command
type globalOptions struct {
	configFile string
	logFile    string
	debug      bool
	noColor    bool
}

// env is the state every subcommand runs with. It is filled in by the root
// command's PersistentPreRunE before any subcommand runs.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	noColor bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	e := &env{cfg: config.Default(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "schemaprof",
		Short: "Profile, flatten and explore LinkML-style schemas",
		Long: color.CyanString(`schemaprof - schema profiling toolkit

schemaprof works on YAML schemas made of classes, slots, types and enums.

It can:
  • Cut a schema down to the classes you need (profile)
  • Flatten a class into a self-contained data product
  • Find reference paths between classes and draw the class graph
  • Generate example instances and DataSet collection classes
  • Generate SQL DDL and Go structs`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default ./schemaprof.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "Write the log to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newProfileCommand(e))
	rootCmd.AddCommand(newDataProductCommand(e))
	rootCmd.AddCommand(newPydanticCommand(e))
	rootCmd.AddCommand(newMergeCommand(e))
	rootCmd.AddCommand(newPathsCommand(e))
	rootCmd.AddCommand(newGraphCommand(e))
	rootCmd.AddCommand(newClassesCommand(e))
	rootCmd.AddCommand(newExampleCommand(e))
	rootCmd.AddCommand(newDatasetCommand(e))
	rootCmd.AddCommand(newLintCommand(e))
	rootCmd.AddCommand(newDDLCommand(e))
	rootCmd.AddCommand(newGoStructCommand(e))

	return rootCmd
}

// setup loads configuration and builds the logger
func (e *env) setup(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return &renderedError{msg: ui.ConfigError(err.Error(), opts.noColor), err: err}
	}
	e.cfg = cfg

	e.noColor = opts.noColor || cfg.Output.NoColor
	if e.noColor {
		color.NoColor = true
	}

	logFile := opts.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	logger, err := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Debug:     opts.debug,
		File:      logFile,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Stderr:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	e.logger = logger
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the schemaprof version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			kv.AddRow("schemaprof version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// renderedError carries a formatted message block for an error
type renderedError struct {
	msg string
	err error
}

func (e *renderedError) Error() string { return e.err.Error() }
func (e *renderedError) Unwrap() error { return e.err }

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func reportError(w io.Writer, err error) {
	var rendered *renderedError
	if errors.As(err, &rendered) {
		fmt.Fprint(w, rendered.msg)
		return
	}
	errorColor := color.New(color.FgRed, color.Bold)
	errorColor.Fprintf(w, "Error: %v\n", err)
}
