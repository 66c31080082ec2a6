package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/schemaprof/internal/cli/config"
	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/schema"
)

// loadSchema reads a schema file, rendering read and parse failures
func (e *env) loadSchema(path string) (*schema.Schema, error) {
	s, err := schema.Load(path)
	if err != nil {
		return nil, &renderedError{msg: ui.SchemaFileError(path, err, e.noColor), err: err}
	}
	return s, nil
}

// loadView reads a schema file and opens a view on it
func (e *env) loadView(path string) (*schema.View, error) {
	s, err := e.loadSchema(path)
	if err != nil {
		return nil, err
	}
	view, err := schema.NewView(s)
	if err != nil {
		return nil, e.schemaError(err, path, nil)
	}
	return view, nil
}

// schemaError renders errors from the schema packages. Missing elements get
// "did you mean" suggestions drawn from the view when one is available.
func (e *env) schemaError(err error, path string, view *schema.View) error {
	var notFound *schema.NotFoundError
	if errors.As(err, &notFound) {
		var candidates []string
		if view != nil {
			candidates = namesOfKind(view, notFound.Kind)
		}
		suggestions := ui.FindSimilar(notFound.Name, candidates, nil)
		return &renderedError{
			msg: ui.ElementNotFoundError(notFound.Kind.String(), notFound.Name, path, suggestions, e.noColor),
			err: err,
		}
	}

	context := "invalid schema"
	switch {
	case errors.Is(err, schema.ErrInvalidReference):
		context = "invalid reference"
	case errors.Is(err, schema.ErrRecursion):
		context = "recursive reference"
	case errors.Is(err, schema.ErrInheritanceCycle):
		context = "inheritance cycle"
	case errors.Is(err, schema.ErrNameCollision), errors.Is(err, schema.ErrSentinelCollision):
		context = "name collision"
	case errors.Is(err, schema.ErrRenameCollision):
		context = "rename collision"
	}
	return &renderedError{msg: ui.SchemaError(context, err, path, e.noColor), err: err}
}

func namesOfKind(view *schema.View, kind schema.ElementKind) []string {
	switch kind {
	case schema.KindSlot:
		return view.SlotNames()
	case schema.KindType:
		return view.TypeNames()
	case schema.KindEnum:
		return view.EnumNames()
	default:
		return view.ClassNames()
	}
}

// outputOptions are the flags of commands that emit a document
type outputOptions struct {
	format string
	file   string
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: yaml or json (default from config)")
	cmd.Flags().StringVarP(&o.file, "output", "o", "", "Write to this file instead of stdout")
}

// write encodes v to the output file or the command's stdout
func (o *outputOptions) write(cmd *cobra.Command, e *env, v any) error {
	name := o.format
	if name == "" {
		name = e.cfg.Output.Format
	}
	format, err := schema.ParseFormat(name)
	if err != nil {
		return err
	}

	return writeTo(cmd, o.file, func(w io.Writer) error {
		return schema.Write(w, v, format)
	})
}

// writeTo runs fn against the named file, or stdout when file is empty
func writeTo(cmd *cobra.Command, file string, fn func(io.Writer) error) error {
	if file == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// boolSetting returns the flag value when the flag was given and the
// configured value otherwise
func boolSetting(cmd *cobra.Command, flag string, value, configured bool) bool {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return configured
}

// renameOverrides combines configured and command line old=new pairs;
// command line pairs win.
func (e *env) renameOverrides(pairs []string) (map[string]string, error) {
	return config.ParseOverrides(append(append([]string{}, e.cfg.Profile.Attributes...), pairs...))
}
