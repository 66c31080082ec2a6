package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/codegen"
	"github.com/conduit-lang/schemaprof/internal/profile"
	"github.com/conduit-lang/schemaprof/internal/store"
)

type ddlOptions struct {
	dialect string
	drop    bool
	apply   bool
	driver  string
	dsn     string
	file    string
}

func newDDLCommand(e *env) *cobra.Command {
	opts := &ddlOptions{}

	cmd := &cobra.Command{
		Use:   "ddl SCHEMA CLASS",
		Short: "Generate SQL DDL for a class's data product",
		Long: `Flatten CLASS into a data product and generate the SQL that creates a table
for it. With --apply the statements run against a database in a single
transaction.`,
		Example: `  schemaprof ddl zoo.yaml Dog
  schemaprof ddl zoo.yaml Dog --dialect sqlite --apply --dsn zoo.db
  schemaprof ddl zoo.yaml Dog --apply --driver pgx --dsn postgres://localhost/zoo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(cmd, e, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "SQL dialect: postgres or sqlite (default from config)")
	cmd.Flags().BoolVar(&opts.drop, "drop", false, "Generate DROP statements instead")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Execute the statements against a database")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "Database driver: sqlite3, postgres or pgx (default from dialect)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Data source name for --apply")
	cmd.Flags().StringVarP(&opts.file, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func runDDL(cmd *cobra.Command, e *env, path, class string, opts *ddlOptions) error {
	dialectName := opts.dialect
	if dialectName == "" {
		dialectName = e.cfg.DDL.Dialect
	}
	dialect, err := codegen.ParseDialect(dialectName)
	if err != nil {
		return err
	}

	view, err := e.loadView(path)
	if err != nil {
		return err
	}
	p, err := profile.New(view, profile.WithLogger(e.logger))
	if err != nil {
		return e.schemaError(err, path, view)
	}
	flat, err := p.Flatten(class)
	if err != nil {
		return e.schemaError(err, path, view)
	}

	gen := codegen.NewDDLGenerator(view, dialect)
	var stmts []string
	if opts.drop {
		stmts = gen.GenerateDropStatements(flat)
	} else {
		stmts, err = gen.GenerateStatements(flat)
		if err != nil {
			return err
		}
	}

	if !opts.apply {
		return writeTo(cmd, opts.file, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, strings.Join(stmts, "\n\n"))
			return err
		})
	}
	return applyDDL(cmd.Context(), cmd, e, dialect, opts, stmts)
}

func applyDDL(ctx context.Context, cmd *cobra.Command, e *env, dialect codegen.Dialect, opts *ddlOptions, stmts []string) error {
	driver := opts.driver
	if driver == "" {
		driver = e.cfg.DDL.Driver
	}
	if driver == "" {
		driver = defaultDriver(dialect)
	}
	dsn := opts.dsn
	if dsn == "" {
		dsn = e.cfg.DDL.DSN
	}

	db, err := store.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Apply(ctx, db, stmts); err != nil {
		return err
	}
	ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Applied %d statements", len(stmts)), e.noColor)
	return nil
}

func defaultDriver(dialect codegen.Dialect) string {
	if dialect == codegen.DialectSQLite {
		return "sqlite3"
	}
	return "pgx"
}

func newGoStructCommand(e *env) *cobra.Command {
	var (
		pkg  string
		file string
	)

	cmd := &cobra.Command{
		Use:   "gostruct SCHEMA",
		Short: "Generate Go structs for the classes of a schema",
		Long: `Generate a Go source file with one struct per class and a string type per
enum. Subclasses embed their parent; json and yaml tags carry the attribute
names.`,
		Example: `  schemaprof gostruct zoo.yaml --package zoo -o zoo_gen.go`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := e.loadView(args[0])
			if err != nil {
				return err
			}
			f, err := codegen.GoStructs(view, pkg)
			if err != nil {
				return e.schemaError(err, args[0], view)
			}
			return writeTo(cmd, file, f.Render)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "model", "Package name of the generated file")
	cmd.Flags().StringVarP(&file, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}
