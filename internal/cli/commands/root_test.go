package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/edmoas/internal/docs"
	"github.com/conduit-lang/edmoas/internal/paths"
)

const tripsFixture = `
title: Trips
version: "2.0"
schemas:
  - namespace: Trips
    alias: t
    complex_types:
      - name: Location
        properties:
          - {name: Address, type: Edm.String, nullable: true}
    entity_types:
      - name: Person
        key: [UserName]
        properties:
          - {name: UserName, type: Edm.String}
          - {name: HomeAddress, type: Location, nullable: true}
        navigation:
          - {name: Friends, target: Person, collection: true, nullable: true}
    actions:
      - name: ResetDataSource
container:
  namespace: Trips
  name: Container
  entity_sets:
    - {name: People, type: Person}
  imports:
    - {name: ResetDataSource}
annotations:
  - target: People
    term: Org.OData.Capabilities.V1.InsertRestrictions
    value: {Insertable: false}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "edmoas", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"version", "paths", "inspect", "openapi"})

	for _, flag := range []string{"model", "config", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version, GitCommit = "1.2.3", "abc123"
	defer func() { Version, GitCommit = "dev", "unknown" }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "edmoas version: 1.2.3")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version: go")
}

func TestPathsCommandEnumeratesModel(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	out, _, err := execute(t, "paths", "--model", model)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6, out)
	assert.Contains(t, lines[2], "EntitySet")
	assert.Contains(t, lines[3], "/People({UserName})")
	assert.Contains(t, lines[4], "/People({UserName})/Friends")
	assert.Contains(t, lines[5], "OperationImport")
}

func TestInspectSummary(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	out, _, err := execute(t, "inspect", "--model", model, "/People", "/People/{UserName}")
	require.NoError(t, err)
	assert.Contains(t, out, "Navigable")
	assert.Contains(t, out, "GET PATCH DELETE")
	assert.NotContains(t, out, "POST", "inserts are restricted")
}

func TestInspectJSON(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	out, _, err := execute(t, "inspect", "--model", model, "--format", "json")
	require.NoError(t, err)

	var described []docs.PathDoc
	require.NoError(t, json.Unmarshal([]byte(out), &described))
	require.Len(t, described, 4)

	assert.Equal(t, "/People", described[0].Path)
	assert.Equal(t, "EntitySet", described[0].Kind)
	require.Len(t, described[0].Operations, 1)
	assert.Equal(t, "GET", described[0].Operations[0].Method)

	assert.Equal(t, "/ResetDataSource", described[3].Path)
	require.Len(t, described[3].Operations, 1)
	assert.Equal(t, "POST", described[3].Operations[0].Method)
	assert.Nil(t, described[3].Operations[0].RequestBody)
}

func TestInspectDetail(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	out, _, err := execute(t, "inspect", "--model", model, "--detail", "/People/{UserName}")
	require.NoError(t, err)
	assert.Contains(t, out, "/People({UserName})\n")
	assert.Regexp(t, `Navigable:\s+yes`, out)
	assert.Contains(t, out, "Key UserName: Edm.String")
	assert.Contains(t, out, "Operation ID")
	assert.Contains(t, out, "PATCH")
}

func TestInspectRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "inspect", "--model", "unused.yaml", "--format", "xml")
	assert.Error(t, err)
}

func TestOpenAPIStdout(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	out, _, err := execute(t, "openapi", "--model", model, "--base-url", "https://trips.example.com")
	require.NoError(t, err)

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "3.0.3", spec["openapi"])

	info := spec["info"].(map[string]interface{})
	assert.Equal(t, "Trips", info["title"])
	assert.Equal(t, "2.0", info["version"])

	paths := spec["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/People")
	assert.Contains(t, paths, "/ResetDataSource")
}

func TestOpenAPIMarkdownToDirectory(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)
	dir := t.TempDir()

	out, _, err := execute(t, "openapi", "--model", model, "--format", "markdown", "--output", dir, "--title", "Trip Service")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 paths")

	data, err := os.ReadFile(filepath.Join(dir, "paths.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Trip Service API Paths")
}

func TestUnknownPathSuggestsAlternatives(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	_, stderr, err := execute(t, "inspect", "--model", model, "/Poeple")
	require.Error(t, err)
	assert.Contains(t, stderr, "PATH NOT FOUND: /Poeple")
	assert.Contains(t, stderr, "Did you mean: /People?")

	var reported reportedError
	assert.True(t, errors.As(err, &reported))
}

func TestInvalidPathShapeIsReported(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	for _, command := range []string{"inspect", "paths", "openapi"} {
		t.Run(command, func(t *testing.T) {
			_, stderr, err := execute(t, command, "--model", model, "/People/{UserName}/HomeAddress")
			require.Error(t, err)
			assert.ErrorIs(t, err, paths.ErrInvalidPathShape)
			assert.Contains(t, stderr, "PATH NOT FOUND: /People/{UserName}/HomeAddress")
			assert.Contains(t, stderr, "invalid path shape")

			var reported reportedError
			assert.True(t, errors.As(err, &reported))
		})
	}
}

func TestMissingModel(t *testing.T) {
	_, _, err := execute(t, "paths")
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestInvalidModel(t *testing.T) {
	model := writeFile(t, "broken.yaml", "schemas:\n  - alias: x\n")

	_, stderr, err := execute(t, "paths", "--model", model)
	require.Error(t, err)
	assert.Contains(t, stderr, "MODEL ERROR")
}

func TestInvalidSettings(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)
	settings := writeFile(t, "edmoas.yaml", "tag_depth: 0\n")

	_, stderr, err := execute(t, "paths", "--model", model, "--config", settings)
	require.Error(t, err)
	assert.Contains(t, stderr, "CONFIGURATION ERROR")
}

func TestVerboseLogsDecisions(t *testing.T) {
	model := writeFile(t, "trips.yaml", tripsFixture)

	_, stderr, err := execute(t, "inspect", "--model", model, "--verbose", "/People")
	require.NoError(t, err)
	assert.Contains(t, stderr, "model loaded")
	assert.Contains(t, stderr, "path described")
}

func TestQueryOptions(t *testing.T) {
	params := []*docs.ParameterDoc{
		{Name: "UserName", In: docs.InPath, Required: true},
		{Name: "$top", In: docs.InQuery},
		{Name: "$filter", In: docs.InQuery, Required: true},
	}
	assert.Equal(t, "$top $filter*", queryOptions(params))
	assert.Equal(t, "-", queryOptions(nil))

	var many []*docs.ParameterDoc
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		many = append(many, &docs.ParameterDoc{Name: n, In: docs.InQuery})
	}
	assert.Equal(t, "a b c d +2", queryOptions(many))
}
