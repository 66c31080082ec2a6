package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/profile"
	"github.com/conduit-lang/schemaprof/internal/schema"
	"github.com/conduit-lang/schemaprof/internal/watch"
)

type profileOptions struct {
	classes      []string
	skipOptional bool
	fixDoc       bool
	snakeCase    bool
	attributes   []string
	strict       bool
	dataProduct  bool
	interactive  bool
	watch        bool
	output       outputOptions
}

func newProfileCommand(e *env) *cobra.Command {
	opts := &profileOptions{}

	cmd := &cobra.Command{
		Use:   "profile SCHEMA",
		Short: "Cut a schema down to the classes it needs",
		Long: `Profile a schema around one or more root classes.

The profile keeps the roots, their ancestors and, transitively, every class,
type and enum their slots range over. With --skip-optional, optional slots
that range over classes outside the roots are pruned to a placeholder type.`,
		Example: `  # Keep Person and everything it needs
  schemaprof profile zoo.yaml -c Person

  # Keep Dog and Person, dropping optional references to other classes
  schemaprof profile zoo.yaml -c Dog -c Person --skip-optional

  # Flatten a single class into a data product
  schemaprof profile zoo.yaml -c Dog --data-product

  # Pick root classes interactively and re-run on every save
  schemaprof profile zoo.yaml --interactive --watch -o profile.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, e, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.classes, "class-name", "c", nil, "Root class to keep (repeatable)")
	cmd.Flags().BoolVar(&opts.skipOptional, "skip-optional", false, "Prune optional slots ranging over classes outside the roots")
	cmd.Flags().BoolVar(&opts.fixDoc, "fix-doc", false, "Collapse whitespace in descriptions")
	cmd.Flags().BoolVar(&opts.snakeCase, "snake-case", false, "Rename attributes to snake_case")
	cmd.Flags().StringArrayVar(&opts.attributes, "attr", nil, "Attribute rename override old=new (repeatable)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when any root class is skipped")
	cmd.Flags().BoolVar(&opts.dataProduct, "data-product", false, "Flatten the single root class into a data product")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose root classes interactively")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run when the schema file changes")
	opts.output.addFlags(cmd)

	return cmd
}

func runProfile(cmd *cobra.Command, e *env, path string, opts *profileOptions) error {
	if opts.interactive && len(opts.classes) == 0 {
		view, err := e.loadView(path)
		if err != nil {
			return err
		}
		prompt := &survey.MultiSelect{
			Message: "Root classes:",
			Options: view.ClassNames(),
		}
		if err := survey.AskOne(prompt, &opts.classes, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if len(opts.classes) == 0 {
		return fmt.Errorf("no root classes given, use -c NAME or --interactive")
	}
	if opts.dataProduct && len(opts.classes) != 1 {
		return fmt.Errorf("--data-product takes exactly one class, got %d", len(opts.classes))
	}

	run := func() error { return profileOnce(cmd, e, path, opts) }
	if !opts.watch {
		return run()
	}

	if err := run(); err != nil {
		reportError(cmd.ErrOrStderr(), err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchSchema(ctx, e, path, run, cmd)
}

func watchSchema(ctx context.Context, e *env, path string, run func() error, cmd *cobra.Command) error {
	fmt.Fprint(cmd.ErrOrStderr(), ui.Info(fmt.Sprintf("Watching %s, press Ctrl+C to stop", path), e.noColor))
	return watch.Run(ctx, []string{path}, func([]string) error {
		if err := run(); err != nil {
			reportError(cmd.ErrOrStderr(), err)
		}
		return nil
	}, watch.WithLogger(e.logger))
}

func (o *profileOptions) profilerOptions(cmd *cobra.Command, e *env) ([]profile.Option, error) {
	options := []profile.Option{
		profile.WithLogger(e.logger),
		profile.WithFixDoc(boolSetting(cmd, "fix-doc", o.fixDoc, e.cfg.Profile.FixDoc)),
		profile.WithStrict(o.strict),
	}
	if boolSetting(cmd, "skip-optional", o.skipOptional, e.cfg.Profile.SkipOptional) {
		options = append(options, profile.WithPolicy(profile.PruneOptional))
	}
	if o.snakeCase || len(o.attributes) > 0 {
		overrides, err := e.renameOverrides(o.attributes)
		if err != nil {
			return nil, err
		}
		options = append(options, profile.WithRename(overrides))
	}
	return options, nil
}

func profileOnce(cmd *cobra.Command, e *env, path string, opts *profileOptions) error {
	view, err := e.loadView(path)
	if err != nil {
		return err
	}
	options, err := opts.profilerOptions(cmd, e)
	if err != nil {
		return err
	}
	p, err := profile.New(view, options...)
	if err != nil {
		return e.schemaError(err, path, view)
	}

	if opts.dataProduct {
		out, err := p.DataProduct(opts.classes[0])
		if err != nil {
			return e.schemaError(err, path, view)
		}
		return opts.output.write(cmd, e, out)
	}

	result, err := p.Profile(opts.classes)
	for _, skipped := range result.Skipped {
		warnSkipped(cmd, e, view, skipped)
	}
	if err != nil {
		return err
	}
	return opts.output.write(cmd, e, result.Schema)
}

func warnSkipped(cmd *cobra.Command, e *env, view *schema.View, skipped profile.SkippedRoot) {
	var suggestions []string
	var notFound *schema.NotFoundError
	if errors.As(skipped.Err, &notFound) {
		suggestions = ui.FindSimilar(notFound.Name, view.ClassNames(), nil)
	}
	e.logger.Debug("Skipped root", zap.String("class", skipped.Name), zap.Error(skipped.Err))
	fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(
		fmt.Sprintf("Skipped class %q: %v", skipped.Name, skipped.Err), suggestions, e.noColor))
}

type dataProductOptions struct {
	fixDoc     bool
	snakeCase  bool
	attributes []string
	output     outputOptions
}

func newDataProductCommand(e *env) *cobra.Command {
	opts := &dataProductOptions{}

	cmd := &cobra.Command{
		Use:   "data-product SCHEMA CLASS",
		Short: "Flatten a class into a self-contained data product",
		Long: `Flatten a class into a data product: a single class carrying every
inherited attribute, with references to other classes replaced by the range of
their identifier, together with the types and enums it needs.`,
		Example: `  schemaprof data-product zoo.yaml Dog
  schemaprof data-product zoo.yaml Dog --snake-case --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := e.loadView(args[0])
			if err != nil {
				return err
			}

			options := []profile.Option{
				profile.WithLogger(e.logger),
				profile.WithFixDoc(boolSetting(cmd, "fix-doc", opts.fixDoc, e.cfg.Profile.FixDoc)),
			}
			if opts.snakeCase || len(opts.attributes) > 0 {
				overrides, err := e.renameOverrides(opts.attributes)
				if err != nil {
					return err
				}
				options = append(options, profile.WithRename(overrides))
			}

			p, err := profile.New(view, options...)
			if err != nil {
				return e.schemaError(err, args[0], view)
			}
			out, err := p.DataProduct(args[1])
			if err != nil {
				return e.schemaError(err, args[0], view)
			}
			return opts.output.write(cmd, e, out)
		},
	}

	cmd.Flags().BoolVar(&opts.fixDoc, "fix-doc", false, "Collapse whitespace in descriptions")
	cmd.Flags().BoolVar(&opts.snakeCase, "snake-case", false, "Rename attributes to snake_case")
	cmd.Flags().StringArrayVar(&opts.attributes, "attr", nil, "Attribute rename override old=new (repeatable)")
	opts.output.addFlags(cmd)

	return cmd
}

func newPydanticCommand(e *env) *cobra.Command {
	var attributes []string
	output := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "pydantic SCHEMA",
		Short: "Rename every class attribute to snake_case",
		Long: `Rename the attributes of every class to snake_case, as Python model
generators expect. --attr gives explicit names for individual attributes.`,
		Example: `  schemaprof pydantic zoo.yaml --attr fullName=name`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.loadSchema(args[0])
			if err != nil {
				return err
			}
			overrides, err := e.renameOverrides(attributes)
			if err != nil {
				return err
			}
			renamed, err := schema.RenameAttributes(s, overrides)
			if err != nil {
				return e.schemaError(err, args[0], nil)
			}
			return output.write(cmd, e, renamed)
		},
	}

	cmd.Flags().StringArrayVar(&attributes, "attr", nil, "Attribute rename override old=new (repeatable)")
	output.addFlags(cmd)

	return cmd
}

func newMergeCommand(e *env) *cobra.Command {
	var clobber bool
	output := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "merge DEST SRC",
		Short: "Merge the elements of one schema into another",
		Long: `Merge SRC into DEST. Elements only in SRC are added; for classes in both,
attributes are merged one by one. Existing definitions win unless --clobber
is given.`,
		Example: `  schemaprof merge zoo.yaml extras.yaml --clobber -o merged.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := e.loadSchema(args[0])
			if err != nil {
				return err
			}
			src, err := e.loadSchema(args[1])
			if err != nil {
				return err
			}

			merged := schema.Merge(dst, src, clobber)
			stats := schema.StatsOf(merged)
			e.logger.Info(fmt.Sprintf("Merged schema contains [%d] classes, [%d] types and [%d] enums",
				stats.Classes, stats.Types, stats.Enums))
			return output.write(cmd, e, merged)
		},
	}

	cmd.Flags().BoolVar(&clobber, "clobber", false, "Let SRC definitions replace DEST definitions")
	output.addFlags(cmd)

	return cmd
}
