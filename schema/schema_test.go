package schema

import (
	"testing"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Classification(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Kind
	}{
		{"object by type", "type: object", KindObject},
		{"object by properties", "properties:\n  a: {type: string}", KindObject},
		{"object by additionalProperties", "additionalProperties: true", KindObject},
		{"nullable object union", "type: [object, 'null']", KindObject},
		{"array by type", "type: array", KindArray},
		{"array by items", "items: {type: string}", KindArray},
		{"array wins over object", "type: array\nproperties:\n  a: {}", KindArray},
		{"allOf", "allOf:\n  - $ref: '#/components/schemas/A'", KindComposition},
		{"oneOf with properties", "oneOf: []\nproperties:\n  a: {}", KindComposition},
		{"anyOf", "anyOf:\n  - type: string", KindComposition},
		{"string", "type: string", KindOther},
		{"ref", "$ref: '#/components/schemas/A'", KindOther},
		{"empty", "{}", KindOther},
		{"composition keyword not a list", "allOf: {type: string}", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Parse(nodeutil.MustParse(tt.yaml))
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Kind())
		})
	}
}

func TestParse_NonMapping(t *testing.T) {
	assert.Nil(t, Parse(nil))
	assert.Nil(t, Parse(nodeutil.MustParse("true")))
	assert.Nil(t, Parse(nodeutil.MustParse("[a, b]")))
}

func TestParse_VariantTypes(t *testing.T) {
	obj, ok := Parse(nodeutil.MustParse("type: object")).(*ObjectSchema)
	require.True(t, ok)
	assert.Equal(t, "object", Types(obj.Node())[0])

	_, ok = Parse(nodeutil.MustParse("items: {}")).(*ArraySchema)
	assert.True(t, ok)
	_, ok = Parse(nodeutil.MustParse("oneOf: [{}]")).(*CompositionSchema)
	assert.True(t, ok)
	_, ok = Parse(nodeutil.MustParse("format: uuid")).(*OtherSchema)
	assert.True(t, ok)
}

func TestParse_Subschemas(t *testing.T) {
	node := nodeutil.MustParse(`
type: object
properties:
  name:
    type: string
  skipped: not-a-schema
  tags:
    type: array
    items:
      type: string
items:
  - type: string
allOf:
  - type: object
  - 42
oneOf:
  - type: integer
additionalProperties: false
`)
	s := Parse(node)
	require.NotNil(t, s)
	// allOf is present, so composition wins even though type is object.
	assert.Equal(t, KindComposition, s.Kind())

	subs := s.Children()
	require.Len(t, subs.Properties, 2)
	assert.Equal(t, "name", subs.Properties[0].Name)
	assert.Equal(t, "tags", subs.Properties[1].Name)
	assert.Equal(t, KindArray, subs.Properties[1].Schema.Kind())
	require.NotNil(t, subs.Properties[1].Schema.Children().Items)

	assert.Nil(t, subs.Items, "tuple form items is not a schema")
	require.Len(t, subs.AllOf, 2)
	assert.NotNil(t, subs.AllOf[0])
	assert.Nil(t, subs.AllOf[1], "non-mapping element keeps its slot")
	assert.Len(t, subs.OneOf, 1)
	assert.Empty(t, subs.AnyOf)
	assert.Nil(t, subs.AdditionalProperties, "boolean additionalProperties is not a schema")
	assert.Equal(t, 4, subs.Len())
}

func TestParse_SharesNodes(t *testing.T) {
	node := nodeutil.MustParse("properties:\n  a:\n    type: string\n")
	s := Parse(node)
	prop := s.Children().Properties[0].Schema
	nodeutil.Set(prop.Node(), "format", nodeutil.String("email"))

	assert.Equal(t, "email", nodeutil.GetPath(node, "properties", "a", "format").Value)
}

func TestTypes(t *testing.T) {
	assert.Nil(t, Types(nodeutil.MustParse("format: date")))
	assert.Equal(t, []string{"string"}, Types(nodeutil.MustParse("type: string")))
	assert.Equal(t, []string{"string", "null"}, Types(nodeutil.MustParse("type: [string, 'null']")))
	assert.True(t, HasType(nodeutil.MustParse("type: [integer, 'null']"), "null"))
	assert.False(t, HasType(nodeutil.MustParse("type: integer"), "null"))
}
