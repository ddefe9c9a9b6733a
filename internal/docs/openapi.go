package docs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/conduit-lang/edmoas/internal/naming"
)

// OpenAPIGenerator renders path decisions as an OpenAPI 3.0 document
type OpenAPIGenerator struct {
	config *Config
}

// NewOpenAPIGenerator creates a new OpenAPI generator
func NewOpenAPIGenerator(config *Config) *OpenAPIGenerator {
	if config == nil {
		config = &Config{}
	}
	return &OpenAPIGenerator{
		config: config,
	}
}

// Generate writes openapi.json into the configured output directory
func (g *OpenAPIGenerator) Generate(doc *Documentation) error {
	// Validate the output directory BEFORE making it absolute
	if containsPathTraversal(g.config.OutputDir) {
		return fmt.Errorf("invalid output directory: path traversal detected")
	}

	outputDir := filepath.Clean(g.config.OutputDir)
	if !filepath.IsAbs(outputDir) {
		cwd, _ := os.Getwd()
		outputDir = filepath.Join(cwd, outputDir)
	}

	outputPath := filepath.Join(outputDir, "openapi.json")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := g.Marshal(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write OpenAPI spec: %w", err)
	}

	return nil
}

// Write encodes the document to w
func (g *OpenAPIGenerator) Write(w io.Writer, doc *Documentation) error {
	data, err := g.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write OpenAPI spec: %w", err)
	}
	return nil
}

// Marshal returns the indented JSON document
func (g *OpenAPIGenerator) Marshal(doc *Documentation) ([]byte, error) {
	data, err := json.MarshalIndent(g.createSpec(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI spec: %w", err)
	}
	return data, nil
}

// createSpec creates the complete OpenAPI specification
func (g *OpenAPIGenerator) createSpec(doc *Documentation) map[string]interface{} {
	spec := map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       doc.Info.Title,
			"version":     doc.Info.Version,
			"description": doc.Info.Description,
		},
		"servers": g.createServers(),
		"paths":   g.createPaths(doc.Paths),
		"tags":    g.createTags(doc.Paths),
	}

	return spec
}

// createServers creates the servers section
func (g *OpenAPIGenerator) createServers() []map[string]interface{} {
	servers := make([]map[string]interface{}, 0)

	if g.config.BaseURL != "" {
		servers = append(servers, map[string]interface{}{
			"url":         g.config.BaseURL,
			"description": "Service root",
		})
	}

	for _, serverURL := range g.config.ServerURLs {
		servers = append(servers, map[string]interface{}{
			"url":         serverURL.URL,
			"description": serverURL.Description,
		})
	}

	if len(servers) == 0 {
		servers = append(servers, map[string]interface{}{
			"url":         "http://localhost",
			"description": "Development server",
		})
	}

	return servers
}

// createPaths creates the paths section. Paths hidden by navigation
// restrictions are left out.
func (g *OpenAPIGenerator) createPaths(docs []*PathDoc) map[string]interface{} {
	paths := make(map[string]interface{})

	for _, pathDoc := range docs {
		if !pathDoc.Navigable || len(pathDoc.Operations) == 0 {
			continue
		}

		item := make(map[string]interface{})
		for _, op := range pathDoc.Operations {
			item[strings.ToLower(op.Method)] = g.createOperation(op)
		}
		if len(pathDoc.Parameters) > 0 {
			item["parameters"] = g.createParameters(pathDoc.Parameters)
		}
		paths[pathDoc.Path] = item
	}

	return paths
}

// createTags lists every tag used by a rendered operation, sorted by name
func (g *OpenAPIGenerator) createTags(docs []*PathDoc) []map[string]interface{} {
	seen := make(map[string]bool)
	for _, pathDoc := range docs {
		if !pathDoc.Navigable {
			continue
		}
		for _, op := range pathDoc.Operations {
			for _, tag := range op.Tags {
				seen[tag] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		tags = append(tags, map[string]interface{}{"name": name})
	}
	return tags
}

// createOperation creates an operation object. The operationId is omitted
// when the operation has none.
func (g *OpenAPIGenerator) createOperation(op *OperationDoc) map[string]interface{} {
	operation := map[string]interface{}{
		"summary":   op.Summary,
		"tags":      op.Tags,
		"responses": g.createResponses(op.Responses),
	}

	if op.OperationID != "" {
		operation["operationId"] = op.OperationID
	}

	if op.Description != "" {
		operation["description"] = op.Description
	}

	if len(op.Parameters) > 0 {
		operation["parameters"] = g.createParameters(op.Parameters)
	}

	if op.RequestBody != nil {
		operation["requestBody"] = g.createRequestBody(op.RequestBody)
	}

	return operation
}

// createParameters creates parameter objects
func (g *OpenAPIGenerator) createParameters(params []*ParameterDoc) []map[string]interface{} {
	parameters := make([]map[string]interface{}, 0, len(params))

	for _, param := range params {
		parameter := map[string]interface{}{
			"name":     param.Name,
			"in":       param.In,
			"required": param.Required || param.In == InPath,
			"schema":   g.createTypeSchema(param.Type),
		}

		if param.Description != "" {
			parameter["description"] = param.Description
		}

		if param.Example != nil {
			parameter["example"] = param.Example
		}

		parameters = append(parameters, parameter)
	}

	return parameters
}

// createRequestBody creates a request body object
func (g *OpenAPIGenerator) createRequestBody(body *RequestBodyDoc) map[string]interface{} {
	requestBody := map[string]interface{}{
		"description": body.Description,
		"required":    body.Required,
	}

	if body.Schema != nil {
		requestBody["content"] = map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": body.Schema,
			},
		}
	}

	return requestBody
}

// createResponses creates the responses object
func (g *OpenAPIGenerator) createResponses(responses []*ResponseDoc) map[string]interface{} {
	responsesObj := make(map[string]interface{})

	for _, response := range responses {
		responseObj := map[string]interface{}{
			"description": response.Description,
		}

		if response.Schema != nil {
			var schema interface{} = response.Schema
			if response.Collection {
				schema = map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"value": map[string]interface{}{
							"type":  "array",
							"items": response.Schema,
						},
					},
				}
			}
			responseObj["content"] = map[string]interface{}{
				"application/json": map[string]interface{}{
					"schema": schema,
				},
			}
		}

		responsesObj[strconv.Itoa(response.Status)] = responseObj
	}

	responsesObj["default"] = map[string]interface{}{
		"$ref": "#/components/responses/error",
	}

	return responsesObj
}

// createTypeSchema maps an Edm type name to an OpenAPI schema
func (g *OpenAPIGenerator) createTypeSchema(edmType string) interface{} {
	if !strings.HasPrefix(edmType, "Edm.") && edmType != "" {
		return naming.SchemaRef(edmType)
	}

	schema := map[string]interface{}{
		"type": mapTypeToOpenAPI(edmType),
	}
	if format := mapTypeToFormat(edmType); format != "" {
		schema["format"] = format
	}
	return schema
}

// mapTypeToOpenAPI maps Edm primitive types to OpenAPI types
func mapTypeToOpenAPI(edmType string) string {
	switch edmType {
	case "Edm.Int16", "Edm.Int32", "Edm.Int64", "Edm.Byte", "Edm.SByte":
		return "integer"
	case "Edm.Single", "Edm.Double", "Edm.Decimal":
		return "number"
	case "Edm.Boolean":
		return "boolean"
	default:
		return "string"
	}
}

// mapTypeToFormat returns the OpenAPI format of an Edm primitive type
func mapTypeToFormat(edmType string) string {
	switch edmType {
	case "Edm.Int16", "Edm.Int32":
		return "int32"
	case "Edm.Int64":
		return "int64"
	case "Edm.Single":
		return "float"
	case "Edm.Double":
		return "double"
	case "Edm.Decimal":
		return "decimal"
	case "Edm.Guid":
		return "uuid"
	case "Edm.Date":
		return "date"
	case "Edm.DateTimeOffset":
		return "date-time"
	case "Edm.Binary":
		return "base64url"
	default:
		return ""
	}
}
