package nodeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestSet_ReplacesInPlaceAndAppendsNew(t *testing.T) {
	m := MustParse("a: 1\nb: 2\nc: 3\n")

	replaced := Set(m, "b", String("two"))
	assert.True(t, replaced)
	assert.False(t, Set(m, "d", String("four")))

	assert.Equal(t, []string{"a", "b", "c", "d"}, Keys(m))
	assert.Equal(t, "two", Get(m, "b").Value)
	assert.Equal(t, "four", Get(m, "d").Value)
}

func TestDelete(t *testing.T) {
	m := MustParse("a: 1\nb: 2\nc: 3\n")

	removed := Delete(m, "b")
	require.NotNil(t, removed)
	assert.Equal(t, "2", removed.Value)
	assert.Equal(t, []string{"a", "c"}, Keys(m))
	assert.Nil(t, Delete(m, "missing"))
	assert.Nil(t, Delete(String("x"), "a"), "non-mapping is ignored")
}

func TestGetPath(t *testing.T) {
	m := MustParse("components:\n  schemas:\n    Foo:\n      type: string\n")

	foo := GetPath(m, "components", "schemas", "Foo")
	require.NotNil(t, foo)
	assert.Equal(t, "string", Get(foo, "type").Value)
	assert.Nil(t, GetPath(m, "components", "responses", "Foo"))
}

func TestEnsureMapping(t *testing.T) {
	m := MustParse("responses: null\n")

	responses := EnsureMapping(m, "responses")
	require.True(t, IsMapping(responses))
	assert.Same(t, responses, Get(m, "responses"), "null value replaced by a mapping")
	assert.Same(t, responses, EnsureMapping(m, "responses"), "existing mapping reused")
}

func TestIsTrue(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want bool
	}{
		{"bool true", "v: true", true},
		{"bool false", "v: false", false},
		{"quoted true", `v: "true"`, false},
		{"integer", "v: 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrue(Get(MustParse(tt.yaml), "v")))
		})
	}
}

func TestDeepCopy_ExpandsAliases(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
base: &shared
  type: string
copy: *shared
`), &doc))
	root := Root(&doc)

	c := DeepCopy(root)
	assert.Empty(t, Get(c, "base").Anchor)
	aliased := Get(c, "copy")
	require.Equal(t, yaml.MappingNode, aliased.Kind)
	assert.Equal(t, "string", Get(aliased, "type").Value)
	assert.NotSame(t, Get(c, "base"), aliased)

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "&")
	assert.NotContains(t, string(out), "*")
}

func TestDeepCopy_Independent(t *testing.T) {
	orig := MustParse("a:\n  b: 1\n")
	c := DeepCopy(orig)
	Set(Get(c, "a"), "b", String("changed"))
	assert.Equal(t, "1", GetPath(orig, "a", "b").Value)
}

func TestNormalize_ClearsFlowAndQuoting(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`{"type": "string", "enum": ["a", "b"]}`), &doc))
	root := Root(&doc)
	Normalize(root)

	out, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "{")
	assert.NotContains(t, string(out), `"`)
}

func TestMapping_Builder(t *testing.T) {
	m := Mapping(
		"description", "Not Found",
		"content", Mapping("application/json", Mapping("schema", Mapping("$ref", "#/components/schemas/ErrorInfo"))),
	)
	assert.Equal(t, []string{"description", "content"}, Keys(m))
	ref := GetPath(m, "content", "application/json", "schema", "$ref")
	require.NotNil(t, ref)
	assert.Equal(t, "#/components/schemas/ErrorInfo", ref.Value)
}

func TestString_NullIsQuoted(t *testing.T) {
	out, err := yaml.Marshal(Sequence(String("string"), String("null")))
	require.NoError(t, err)

	var decoded []any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, []any{"string", "null"}, decoded)
}

func TestPairs_StopsEarly(t *testing.T) {
	m := MustParse("a: 1\nb: 2\nc: 3\n")
	var seen []string
	for k := range Pairs(m) {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 3, Len(m))
}
