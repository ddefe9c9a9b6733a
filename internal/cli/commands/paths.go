package commands

import (
	"github.com/spf13/cobra"

	"github.com/conduit-lang/edmoas/internal/cli/ui"
)

// NewPathsCommand creates the paths command
func NewPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths [path...]",
		Short: "List and classify paths",
		Long: `List the paths of a model with their kind and URL template.

Without arguments the paths listed in the fixture are used; a fixture
without paths lists every path reachable in one navigation step.`,
		RunE: runPaths,
	}
}

func runPaths(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	table := ui.NewTable(cmd.OutOrStdout(), []string{"Path", "Kind", "Template"}, &ui.TableOptions{NoColor: noColor})
	for _, p := range s.paths {
		template, err := s.convert.PathName(p)
		if err != nil {
			return err
		}
		table.AddRow(p.String(), p.Kind().String(), template)
	}
	table.Render()
	return nil
}
