package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/schemaprof/internal/cli/ui"
	"github.com/conduit-lang/schemaprof/internal/graph"
	"github.com/conduit-lang/schemaprof/internal/schema"
)

// loadGraph reads a schema file and builds its reference graph
func (e *env) loadGraph(path string) (*schema.View, *graph.Graph, error) {
	view, err := e.loadView(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := graph.Build(view)
	if err != nil {
		return nil, nil, e.schemaError(err, path, view)
	}
	return view, g, nil
}

func newPathsCommand(e *env) *cobra.Command {
	var (
		all      bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "paths SCHEMA SRC DST",
		Short: "Find reference paths between two classes",
		Long: `List the paths from SRC to DST in the reference graph. Edges run from a
parent class to its children and from a class to the classes its slots range
over. By default only the shortest paths are listed; --all lists every simple
path. Each path is followed by the profile arguments that keep it.`,
		Example: `  schemaprof paths zoo.yaml Person Address
  schemaprof paths zoo.yaml Animal Address --all --max-depth 4`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, g, err := e.loadGraph(args[0])
			if err != nil {
				return err
			}

			var paths [][]string
			if all {
				paths, err = g.AllPaths(args[1], args[2], maxDepth)
			} else {
				paths, err = g.ShortestPaths(args[1], args[2])
			}
			if err != nil {
				return e.schemaError(err, args[0], view)
			}

			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				fmt.Fprint(out, ui.Info(fmt.Sprintf("No path from %s to %s", args[1], args[2]), e.noColor))
				writeNeighbours(out, fmt.Sprintf("%s refers to", args[1]), g.Successors(args[1]), e.noColor)
				writeNeighbours(out, fmt.Sprintf("%s is referred to by", args[2]), g.Predecessors(args[2]), e.noColor)
				return nil
			}
			for i, path := range paths {
				section := ui.NewSection(out, fmt.Sprintf("Path %d (%d steps)", i+1, len(path)-1), e.noColor)
				section.AddLine(strings.Join(path, " -> "))
				section.AddLine(profileArgs(path))
				section.Render()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every simple path instead of the shortest ones")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum number of steps per path with --all (0 = no limit)")

	return cmd
}

// writeNeighbours prints the one-step neighbours of an endpoint
func writeNeighbours(w io.Writer, title string, classes []string, noColor bool) {
	section := ui.NewSection(w, title, noColor)
	for _, class := range classes {
		section.AddLine(class)
	}
	section.Render()
}

// profileArgs renders the -c arguments that keep every class of a path
func profileArgs(path []string) string {
	parts := make([]string, len(path))
	for i, class := range path {
		parts[i] = "-c " + class
	}
	return strings.Join(parts, " ")
}

func newGraphCommand(e *env) *cobra.Command {
	var (
		format     string
		undirected bool
		file       string
	)

	cmd := &cobra.Command{
		Use:   "graph SCHEMA",
		Short: "Draw the class reference graph",
		Long: `Render the reference graph of a schema as a Mermaid class diagram or a
Graphviz DOT graph. Generalisation and association edges are drawn
differently; --undirected draws each connected pair of classes once.`,
		Example: `  schemaprof graph zoo.yaml
  schemaprof graph zoo.yaml --format dot | dot -Tsvg > zoo.svg
  schemaprof graph report zoo.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := e.loadGraph(args[0])
			if err != nil {
				return err
			}
			return writeTo(cmd, file, func(w io.Writer) error {
				switch format {
				case "mermaid":
					return g.WriteMermaid(w, !undirected)
				case "dot":
					return g.WriteDOT(w, !undirected)
				default:
					return fmt.Errorf("unknown graph format: %s (expected mermaid or dot)", format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "mermaid", "Diagram format: mermaid or dot")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "Draw undirected links")
	cmd.Flags().StringVarP(&file, "output", "o", "", "Write to this file instead of stdout")

	cmd.AddCommand(newGraphReportCommand(e))
	return cmd
}

func newGraphReportCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "report SCHEMA",
		Short: "Report association cycles and the generalisation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := e.loadGraph(args[0])
			if err != nil {
				return err
			}
			report := g.Analyze()
			fmt.Fprint(cmd.OutOrStdout(), report.String())
			if report.HasCycles() {
				e.logger.Debug(fmt.Sprintf("Found %d association cycles", len(report.Cycles)))
			}
			return nil
		},
	}
}

func newClassesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "classes SCHEMA",
		Short: "List the classes of a schema",
		Long:  "List every class with its parent, attribute count, identifier and whether it is a leaf.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := e.loadView(args[0])
			if err != nil {
				return err
			}

			leaves := make(map[string]bool)
			for _, name := range view.Leaves() {
				leaves[name] = true
			}

			table := ui.NewTable(cmd.OutOrStdout(),
				[]string{"Class", "Parent", "Attributes", "Identifier", "Abstract", "Leaf"},
				&ui.TableOptions{NoColor: e.noColor})
			for _, name := range view.ClassNames() {
				c, _ := view.Class(name)
				induced, err := view.InducedClass(name)
				if err != nil {
					return e.schemaError(err, args[0], view)
				}
				identifier := ""
				if id, ok := view.IdentifierSlot(name); ok {
					identifier = id.Name
				}
				table.AddRow(name, c.IsA, strconv.Itoa(induced.Attributes.Len()), identifier,
					yesNo(c.Abstract), yesNo(leaves[name]))
			}
			table.Render()
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
