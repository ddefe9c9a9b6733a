package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/edmoas/internal/cli/ui"
	"github.com/conduit-lang/edmoas/internal/docs"
)

var (
	openAPIFormat  string
	openAPIOutput  string
	openAPIBaseURL string
	openAPITitle   string
	openAPIVersion string
)

// NewOpenAPICommand creates the openapi command
func NewOpenAPICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi [path...]",
		Short: "Render the decisions as an OpenAPI document",
		Long: `Render the paths of a model as an OpenAPI 3.0 document, or as a
Markdown report of the same decisions.

Without --output the document is written to stdout. With --output it is
written to openapi.json or paths.md in that directory.`,
		Example: `  edmoas openapi --model trippin.yaml
  edmoas openapi --model trippin.yaml --format markdown --output docs`,
		RunE: runOpenAPI,
	}

	cmd.Flags().StringVarP(&openAPIFormat, "format", "f", "openapi", "Output format: openapi, markdown")
	cmd.Flags().StringVarP(&openAPIOutput, "output", "o", "", "Output directory (stdout when empty)")
	cmd.Flags().StringVar(&openAPIBaseURL, "base-url", "", "Service root URL")
	cmd.Flags().StringVar(&openAPITitle, "title", "", "API title (defaults to the fixture title)")
	cmd.Flags().StringVar(&openAPIVersion, "api-version", "", "API version (defaults to the fixture version)")

	return cmd
}

// generator renders a document to stdout or into a directory
type generator interface {
	Generate(doc *docs.Documentation) error
	Write(w io.Writer, doc *docs.Documentation) error
}

func runOpenAPI(cmd *cobra.Command, args []string) error {
	config := &docs.Config{OutputDir: openAPIOutput, BaseURL: openAPIBaseURL}

	var gen generator
	var file string
	switch openAPIFormat {
	case "openapi":
		gen, file = docs.NewOpenAPIGenerator(config), "openapi.json"
	case "markdown":
		gen, file = docs.NewMarkdownGenerator(config), "paths.md"
	default:
		return fmt.Errorf("unknown format %q, expected openapi or markdown", openAPIFormat)
	}

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	info := docs.Info{
		Title:       firstNonEmpty(openAPITitle, s.fixture.Title),
		Version:     firstNonEmpty(openAPIVersion, s.fixture.Version, "1.0.0"),
		Description: s.fixture.Description,
	}
	doc, err := s.convert.Document(info, s.paths)
	if err != nil {
		return err
	}

	if openAPIOutput == "" {
		return gen.Write(cmd.OutOrStdout(), doc)
	}
	if err := gen.Generate(doc); err != nil {
		return err
	}

	out := filepath.Join(openAPIOutput, file)
	s.logger.Debug("document written", zap.String("file", out), zap.Int("paths", len(doc.Paths)))
	ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %d paths to %s", len(doc.Paths), out), noColor)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
