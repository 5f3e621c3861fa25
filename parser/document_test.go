package parser

import (
	"testing"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operationsSpec = `paths:
  /a:
    summary: not an operation
    parameters: []
    post:
      operationId: createA
    get:
      operationId: listA
  /b:
    delete:
      operationId: deleteB
    head: not-a-mapping
  /c: 42
`

func TestDocument_Operations(t *testing.T) {
	result, err := ParseBytes([]byte(operationsSpec), SourceFormatYAML, "ops.yaml")
	require.NoError(t, err)
	doc := result.Document

	var got []string
	for op := range doc.Operations() {
		got = append(got, op.Method+" "+op.Path)
	}
	assert.Equal(t, []string{"post /a", "get /a", "delete /b"}, got, "document order, non-mappings skipped")

	got = nil
	for op := range doc.Operations(MethodGet, MethodDelete) {
		got = append(got, op.Method+" "+op.Path)
	}
	assert.Equal(t, []string{"get /a", "delete /b"}, got)

	for op := range doc.Operations(MethodPost) {
		assert.Equal(t, "createA", nodeutil.Get(op.Node, "operationId").Value)
	}

	assert.Equal(t, DocumentStats{PathCount: 3, OperationCount: 3}, doc.Stats())
}

func TestDocument_PathItemsEarlyBreak(t *testing.T) {
	result, err := ParseBytes([]byte(operationsSpec), SourceFormatYAML, "ops.yaml")
	require.NoError(t, err)

	var seen []string
	for path := range result.Document.PathItems() {
		seen = append(seen, path)
		break
	}
	assert.Equal(t, []string{"/a"}, seen)
}

func TestDocument_EnsureSchemas(t *testing.T) {
	doc := NewDocument(nil)
	assert.Nil(t, doc.Schemas())
	assert.Nil(t, doc.Paths())
	assert.Nil(t, doc.Schema("Anything"))

	schemas := doc.EnsureSchemas()
	require.NotNil(t, schemas)
	assert.Same(t, schemas, doc.EnsureSchemas())
	assert.Same(t, schemas, doc.Schemas())

	nodeutil.Set(schemas, "Thing", nodeutil.Mapping("type", "object"))
	assert.NotNil(t, doc.Schema("Thing"))
	assert.Equal(t, 1, doc.Stats().SchemaCount)
}

func TestDocument_EnsureSchemasReplacesWrongShape(t *testing.T) {
	result, err := ParseBytes([]byte("components:\n  schemas: []\n"), SourceFormatYAML, "x.yaml")
	require.NoError(t, err)
	doc := result.Document

	assert.Nil(t, doc.Schemas())
	schemas := doc.EnsureSchemas()
	assert.True(t, nodeutil.IsMapping(schemas))
	assert.Same(t, schemas, doc.Schemas())
}

func TestDocument_Copy(t *testing.T) {
	result, err := ParseBytes([]byte(yamlSpec), SourceFormatYAML, "gateway.yaml")
	require.NoError(t, err)
	orig := result.Document

	cp := orig.Copy()
	nodeutil.Set(cp.EnsureSchemas(), "Added", nodeutil.Mapping("type", "string"))
	nodeutil.Get(cp.Schema("Zebra"), "type").Value = "integer"

	assert.Nil(t, orig.Schema("Added"))
	assert.Equal(t, "string", nodeutil.Get(orig.Schema("Zebra"), "type").Value)
}
