package commands

import (
	"github.com/spf13/cobra"

	"github.com/conduit-lang/schemaprof/internal/instance"
	"github.com/conduit-lang/schemaprof/internal/schema"
)

func newExampleCommand(e *env) *cobra.Command {
	var (
		populate     bool
		skipOptional bool
	)
	output := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "example SCHEMA CLASS",
		Short: "Generate an example instance of a class",
		Long: `Generate an instance of CLASS with a sample value for every attribute.
Inlined classes are generated as nested objects. With --populate, references
to other objects carry the identifier generated for the referenced class.`,
		Example: `  schemaprof example zoo.yaml Person
  schemaprof example zoo.yaml Dog --populate --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := e.loadView(args[0])
			if err != nil {
				return err
			}

			mode := instance.Example
			if boolSetting(cmd, "populate", populate, e.cfg.Instance.Populate) {
				mode = instance.Populate
			}
			gen := instance.NewGenerator(view, instance.WithLogger(e.logger))
			record, err := gen.Instance(args[1], mode, skipOptional)
			if err != nil {
				return e.schemaError(err, args[0], view)
			}
			return output.write(cmd, e, record)
		},
	}

	cmd.Flags().BoolVar(&populate, "populate", false, "Fill references with generated identifiers")
	cmd.Flags().BoolVar(&skipOptional, "skip-optional", false, "Leave out attributes that are not required")
	output.addFlags(cmd)

	return cmd
}

func newDatasetCommand(e *env) *cobra.Command {
	var (
		root       string
		leavesOnly bool
		example    bool
	)
	output := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "dataset SCHEMA",
		Short: "Add a DataSet class collecting the schema's classes",
		Long: `Add a DataSet class to the schema. The DataSet carries data set metadata
and one multivalued attribute per collected class, named after the class in
plural lowerCamelCase. With --example, print a populated example DataSet
instead of the schema.`,
		Example: `  schemaprof dataset zoo.yaml
  schemaprof dataset zoo.yaml --leaves --example --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := e.loadView(args[0])
			if err != nil {
				return err
			}

			gen := instance.NewGenerator(view, instance.WithLogger(e.logger))
			ds, err := gen.Dataset(root, leavesOnly)
			if err != nil {
				return e.schemaError(err, args[0], view)
			}
			if !example {
				return output.write(cmd, e, ds)
			}

			dsView, err := schema.NewView(ds)
			if err != nil {
				return e.schemaError(err, args[0], nil)
			}
			record, err := instance.NewGenerator(dsView, instance.WithLogger(e.logger)).
				Instance(instance.DatasetClassName, instance.Populate, false)
			if err != nil {
				return e.schemaError(err, args[0], dsView)
			}
			return output.write(cmd, e, record)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Class the DataSet inherits from")
	cmd.Flags().BoolVar(&leavesOnly, "leaves", false, "Collect only classes without subclasses")
	cmd.Flags().BoolVar(&example, "example", false, "Print an example DataSet instance")
	output.addFlags(cmd)

	return cmd
}
