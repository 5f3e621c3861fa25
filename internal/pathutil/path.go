package pathutil

import "strconv"

// Root is the location of the document itself.
const Root = "$"

// Field appends a fixed keyword: Field("$", "paths") is "$.paths".
func Field(base, name string) string {
	return base + "." + name
}

// Key appends a user-defined map key: Key("$.paths", "/a") is "$.paths['/a']".
func Key(base, key string) string {
	return base + "['" + key + "']"
}

// Index appends a list position: Index("$.x.allOf", 2) is "$.x.allOf[2]".
func Index(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// Schema is the location of a component schema.
func Schema(name string) string {
	return Key(Root+".components.schemas", name)
}

// Operation is the location of an operation object.
func Operation(path, method string) string {
	return Field(Key(Root+".paths", path), method)
}
