// Package docs renders the decisions taken for a set of paths as an OpenAPI
// paths fragment or a Markdown report.
package docs

import "github.com/conduit-lang/edmoas/internal/naming"

// Config holds documentation generation configuration
type Config struct {
	// OutputDir is where Generate writes its files
	OutputDir string

	// BaseURL is the primary server URL
	BaseURL string

	// ServerURLs lists additional servers
	ServerURLs []ServerURL
}

// ServerURL represents an API server
type ServerURL struct {
	URL         string
	Description string
}

// Documentation is everything rendered for one model
type Documentation struct {
	Info  Info
	Paths []*PathDoc
}

// Info describes the service
type Info struct {
	Title       string
	Version     string
	Description string
}

// PathDoc holds the decisions taken for one path
type PathDoc struct {
	// Path is the rendered path, e.g. /People/{UserName}/Friends
	Path string `json:"path"`

	// Kind is the classification of the path
	Kind string `json:"kind"`

	// Navigable is false when NavigationRestrictions hide the path
	Navigable bool `json:"navigable"`

	// Tag is the tag shared by the operations of the path
	Tag string `json:"tag,omitempty"`

	Parameters []*ParameterDoc `json:"parameters,omitempty"`
	Operations []*OperationDoc `json:"operations,omitempty"`
}

// OperationDoc documents one HTTP method of a path
type OperationDoc struct {
	Method      string          `json:"method"`
	OperationID string          `json:"operationId,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Parameters  []*ParameterDoc `json:"parameters,omitempty"`
	RequestBody *RequestBodyDoc `json:"requestBody,omitempty"`
	Responses   []*ResponseDoc  `json:"responses,omitempty"`
}

// ParameterDoc documents a path, query or header parameter
type ParameterDoc struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Description string `json:"description,omitempty"`

	// Type is the Edm primitive type name, e.g. Edm.Int32
	Type     string      `json:"type,omitempty"`
	Required bool        `json:"required"`
	Example  interface{} `json:"example,omitempty"`
}

// RequestBodyDoc documents a request body
type RequestBodyDoc struct {
	Description string                  `json:"description,omitempty"`
	Required    bool                    `json:"required"`
	Schema      *naming.ReferenceSchema `json:"schema,omitempty"`
}

// ResponseDoc documents one response status
type ResponseDoc struct {
	Status      int                     `json:"status"`
	Description string                  `json:"description,omitempty"`
	Schema      *naming.ReferenceSchema `json:"schema,omitempty"`
	Collection  bool                    `json:"collection,omitempty"`
}

// Parameter locations
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
)
