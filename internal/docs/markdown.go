package docs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownGenerator renders path decisions as a Markdown report
type MarkdownGenerator struct {
	config *Config
}

// NewMarkdownGenerator creates a new Markdown generator
func NewMarkdownGenerator(config *Config) *MarkdownGenerator {
	if config == nil {
		config = &Config{}
	}
	return &MarkdownGenerator{
		config: config,
	}
}

// Generate writes paths.md into the configured output directory
func (g *MarkdownGenerator) Generate(doc *Documentation) error {
	if containsPathTraversal(g.config.OutputDir) {
		return fmt.Errorf("invalid output directory: path traversal detected")
	}

	outputDir := filepath.Clean(g.config.OutputDir)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf strings.Builder
	g.render(&buf, doc)

	outputPath := filepath.Join(outputDir, "paths.md")
	return os.WriteFile(outputPath, []byte(buf.String()), 0644)
}

// Write renders the report to w
func (g *MarkdownGenerator) Write(w io.Writer, doc *Documentation) error {
	var buf strings.Builder
	g.render(&buf, doc)
	_, err := io.WriteString(w, buf.String())
	return err
}

func (g *MarkdownGenerator) render(buf *strings.Builder, doc *Documentation) {
	title := doc.Info.Title
	if title == "" {
		title = "Service"
	}
	buf.WriteString(fmt.Sprintf("# %s API Paths\n\n", title))

	if doc.Info.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", doc.Info.Description))
	}
	if doc.Info.Version != "" {
		buf.WriteString(fmt.Sprintf("**Version:** %s\n\n", doc.Info.Version))
	}

	// Summary table
	buf.WriteString("## Paths\n\n")
	if len(doc.Paths) == 0 {
		buf.WriteString("No paths.\n\n")
		return
	}
	buf.WriteString("| Path | Kind | Tag | Navigable |\n")
	buf.WriteString("|------|------|-----|-----------|\n")
	for _, p := range doc.Paths {
		buf.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
			p.Path, p.Kind, p.Tag, yesNo(p.Navigable)))
	}
	buf.WriteString("\n")

	for _, p := range doc.Paths {
		if !p.Navigable {
			continue
		}
		for _, op := range p.Operations {
			g.writeOperation(buf, p, op)
		}
	}
}

// writeOperation writes a single operation to the buffer
func (g *MarkdownGenerator) writeOperation(buf *strings.Builder, p *PathDoc, op *OperationDoc) {
	heading := op.OperationID
	if heading == "" {
		heading = op.Summary
	}
	buf.WriteString(fmt.Sprintf("### %s\n\n", heading))

	buf.WriteString("```http\n")
	buf.WriteString(fmt.Sprintf("%s %s\n", op.Method, p.Path))
	buf.WriteString("```\n\n")

	if op.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", op.Description))
	}

	params := append(append([]*ParameterDoc(nil), p.Parameters...), op.Parameters...)
	if len(params) > 0 {
		buf.WriteString("**Parameters:**\n\n")
		buf.WriteString("| Name | In | Type | Required |\n")
		buf.WriteString("|------|----|------|----------|\n")
		for _, param := range params {
			buf.WriteString(fmt.Sprintf("| `%s` | %s | `%s` | %s |\n",
				param.Name, param.In, param.Type, yesNo(param.Required || param.In == InPath)))
		}
		buf.WriteString("\n")
	}

	if op.RequestBody != nil {
		buf.WriteString(fmt.Sprintf("**Request Body:** required: %s\n\n", yesNo(op.RequestBody.Required)))
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
