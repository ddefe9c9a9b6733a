package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/edmoas/internal/cli/ui"
	"github.com/conduit-lang/edmoas/internal/docs"
)

var (
	inspectFormat string
	inspectDetail bool
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [path...]",
		Short: "Show the decisions taken for each path",
		Long: `Show, for every path, its tag, whether it is navigable and the HTTP
operations it exposes with their operation ids and request bodies.

Paths whose shape cannot be classified are reported and skipped.`,
		Example: `  edmoas inspect --model trippin.yaml
  edmoas inspect --model trippin.yaml /People/{UserName} --detail
  edmoas inspect --model trippin.yaml --format json`,
		RunE: runInspect,
	}

	cmd.Flags().StringVarP(&inspectFormat, "format", "f", "table", "Output format: table, json")
	cmd.Flags().BoolVarP(&inspectDetail, "detail", "d", false, "Show parameters and operations of every path")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != "table" && inspectFormat != "json" {
		return fmt.Errorf("unknown format %q, expected table or json", inspectFormat)
	}

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	var described []*docs.PathDoc
	for _, p := range s.paths {
		pd, err := s.convert.Describe(p)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(err.Error(), nil, noColor))
			continue
		}
		described = append(described, pd)
	}

	w := cmd.OutOrStdout()
	switch {
	case inspectFormat == "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(described)
	case inspectDetail:
		for _, pd := range described {
			renderDetail(w, pd)
		}
	default:
		renderSummary(w, described)
	}
	return nil
}

func renderSummary(w io.Writer, described []*docs.PathDoc) {
	table := ui.NewTable(w, []string{"Path", "Kind", "Tag", "Navigable", "Operations"}, &ui.TableOptions{NoColor: noColor})
	for _, pd := range described {
		methods := make([]string, len(pd.Operations))
		for i, op := range pd.Operations {
			methods[i] = op.Method
		}
		table.AddRow(pd.Path, pd.Kind, pd.Tag, ui.YesNo(pd.Navigable), strings.Join(methods, " "))
	}
	table.Render()
}

func renderDetail(w io.Writer, pd *docs.PathDoc) {
	ui.Header(w, pd.Path, noColor)

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Kind", pd.Kind)
	kv.AddRow("Tag", pd.Tag)
	kv.AddRow("Navigable", ui.YesNo(pd.Navigable))
	for _, param := range pd.Parameters {
		kv.AddRow("Key "+param.Name, param.Type)
	}
	kv.Render()
	fmt.Fprintln(w)

	if len(pd.Operations) == 0 {
		fmt.Fprintln(w, "No operations")
		fmt.Fprintln(w)
		return
	}

	table := ui.NewTable(w, []string{"Method", "Operation ID", "Body", "Query"}, &ui.TableOptions{NoColor: noColor})
	for _, op := range pd.Operations {
		table.AddRow(op.Method, op.OperationID, body(op.RequestBody), queryOptions(op.Parameters))
	}
	table.Render()
	fmt.Fprintln(w)
}

func body(b *docs.RequestBodyDoc) string {
	switch {
	case b == nil:
		return "-"
	case b.Required:
		return "required"
	default:
		return "optional"
	}
}

// queryOptions lists the query parameters of an operation, required ones
// marked with a star
func queryOptions(params []*docs.ParameterDoc) string {
	var names []string
	for _, p := range params {
		if p.In != docs.InQuery {
			continue
		}
		name := p.Name
		if p.Required {
			name += "*"
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "-"
	}
	if len(names) > 4 {
		return strings.Join(names[:4], " ") + " +" + strconv.Itoa(len(names)-4)
	}
	return strings.Join(names, " ")
}
