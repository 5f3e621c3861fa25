package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"field", Field(Root, "paths"), "$.paths"},
		{"key", Key("$.paths", "/catalogs/{id}"), "$.paths['/catalogs/{id}']"},
		{"index", Index("$.components.schemas['Dto'].allOf", 1), "$.components.schemas['Dto'].allOf[1]"},
		{"schema", Schema("Catalog"), "$.components.schemas['Catalog']"},
		{"operation", Operation("/catalogs", "get"), "$.paths['/catalogs'].get"},
		{
			"nested",
			Field(Key(Field(Operation("/a", "post"), "responses"), "404"), "content"),
			"$.paths['/a'].post.responses['404'].content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestSchemaRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/ErrorInfo", SchemaRef("ErrorInfo"))
	assert.Equal(t, SchemaRef("X"), RefPrefixSchemas+"X")
}
