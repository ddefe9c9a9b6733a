// Package fixture loads an entity data model, its annotations and a list of
// request paths from a YAML document. It is the model source of the command
// line tool and of integration tests.
//
//	schemas:
//	  - namespace: Trips
//	    alias: t
//	    entity_types:
//	      - name: Person
//	        key: [UserName]
//	        properties:
//	          - {name: UserName, type: Edm.String}
//	        navigation:
//	          - {name: Friends, target: Person, collection: true}
//	container:
//	  namespace: Trips
//	  name: Container
//	  entity_sets:
//	    - {name: People, type: Person}
//	annotations:
//	  - target: People
//	    term: Org.OData.Capabilities.V1.TopSupported
//	    value: false
//	paths:
//	  - /People/{UserName}/Friends
package fixture

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
)

// ErrInvalidFixture is returned when a fixture document cannot be turned
// into a model
var ErrInvalidFixture = errors.New("invalid model fixture")

// PathError reports a fixture path that does not resolve against the model
type PathError struct {
	Raw string
	Err error
}

// Error implements the error interface
func (e *PathError) Error() string { return e.Err.Error() }

// Unwrap returns the parse error
func (e *PathError) Unwrap() error { return e.Err }

// Document is the YAML form of a fixture
type Document struct {
	Title       string       `yaml:"title"`
	Version     string       `yaml:"version"`
	Description string       `yaml:"description"`
	Schemas     []Schema     `yaml:"schemas"`
	Container   *Container   `yaml:"container"`
	Annotations []Annotation `yaml:"annotations"`
	Paths       []string     `yaml:"paths"`
}

// Schema declares the types and operations of one namespace
type Schema struct {
	Namespace    string       `yaml:"namespace"`
	Alias        string       `yaml:"alias"`
	EntityTypes  []Structured `yaml:"entity_types"`
	ComplexTypes []Structured `yaml:"complex_types"`
	EnumTypes    []Enum       `yaml:"enum_types"`
	Actions      []Operation  `yaml:"actions"`
	Functions    []Operation  `yaml:"functions"`
}

// Structured declares an entity or complex type
type Structured struct {
	Name       string       `yaml:"name"`
	Base       string       `yaml:"base"`
	Abstract   bool         `yaml:"abstract"`
	Key        []string     `yaml:"key"`
	Properties []Property   `yaml:"properties"`
	Navigation []Navigation `yaml:"navigation"`
}

// Property declares a structural property
type Property struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Nullable   bool    `yaml:"nullable"`
	Collection bool    `yaml:"collection"`
	Default    *string `yaml:"default"`
}

// Navigation declares a navigation property
type Navigation struct {
	Name           string `yaml:"name"`
	Target         string `yaml:"target"`
	Collection     bool   `yaml:"collection"`
	Nullable       bool   `yaml:"nullable"`
	ContainsTarget bool   `yaml:"contains_target"`
	Partner        string `yaml:"partner"`
}

// Enum declares an enumeration type
type Enum struct {
	Name    string   `yaml:"name"`
	Flags   bool     `yaml:"flags"`
	Members []string `yaml:"members"`
}

// Operation declares an action or a function. The first parameter of a
// bound operation is its binding parameter.
type Operation struct {
	Name       string      `yaml:"name"`
	Bound      bool        `yaml:"bound"`
	Composable bool        `yaml:"composable"`
	Parameters []Parameter `yaml:"parameters"`
	Returns    *Parameter  `yaml:"returns"`
}

// Parameter declares an operation parameter or return type
type Parameter struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	Collection bool   `yaml:"collection"`
	Optional   bool   `yaml:"optional"`
}

// Container declares the entity container
type Container struct {
	Namespace  string   `yaml:"namespace"`
	Name       string   `yaml:"name"`
	EntitySets []Source `yaml:"entity_sets"`
	Singletons []Source `yaml:"singletons"`
	Imports    []Import `yaml:"imports"`
}

// Source declares an entity set or singleton
type Source struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Import declares an action or function import
type Import struct {
	Name      string `yaml:"name"`
	Operation string `yaml:"operation"`
	EntitySet string `yaml:"entity_set"`
}

// Annotation applies a vocabulary term to a model element. Value is
// decoded by Expression; a missing value is a tag annotation.
type Annotation struct {
	Target string    `yaml:"target"`
	Term   string    `yaml:"term"`
	Value  yaml.Node `yaml:"value"`
}

// Fixture is a loaded model together with the paths to convert
type Fixture struct {
	Title       string
	Version     string
	Description string
	Model       *edm.Model
	Paths       []string
}

// Load reads and builds the fixture at path
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model fixture: %w", err)
	}
	return Parse(data)
}

// Parse builds a fixture from its YAML form
func Parse(data []byte) (*Fixture, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	model, err := doc.Build()
	if err != nil {
		return nil, err
	}
	return &Fixture{
		Title:       doc.Title,
		Version:     doc.Version,
		Description: doc.Description,
		Model:       model,
		Paths:       doc.Paths,
	}, nil
}

// ParsePaths resolves the fixture paths against its model. When the
// fixture lists no paths, every path reachable in one navigation step is
// used instead.
func (f *Fixture) ParsePaths() ([]*paths.Path, error) {
	if len(f.Paths) == 0 {
		return paths.Enumerate(f.Model), nil
	}
	out := make([]*paths.Path, 0, len(f.Paths))
	for _, raw := range f.Paths {
		p, err := paths.Parse(f.Model, raw)
		if err != nil {
			return nil, &PathError{Raw: raw, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidFixture, fmt.Sprintf(format, args...))
}
