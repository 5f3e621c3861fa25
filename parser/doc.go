// Package parser loads and writes OpenAPI documents as ordered node trees.
//
// Documents are decoded into go.yaml.in/yaml/v4 node trees rather than typed
// structs so that mapping keys keep their source order through every
// transformation and the written output follows insertion order instead of
// being alphabetized.
//
// # Loading
//
// The decoder is chosen by file extension: ".json" files go through a JSON
// token decoder, everything else through the YAML decoder (YAML accepts JSON
// as well). Loaded trees have presentation styles and comments cleared and
// any YAML aliases expanded into independent copies.
//
//	result, err := parser.ParseFile("catalog/catalog_dsp.json")
//	if err != nil {
//		log.Fatal(err) // *oaserrors.ParseError
//	}
//	fmt.Printf("Schemas: %d\n", result.Stats.SchemaCount)
//
// # Writing
//
// [MarshalYAML] and [WriteFile] never emit anchors or aliases; repeated
// subtrees are written in full.
//
//	if err := parser.WriteFile(doc, "openapi_consolidated.yaml", parser.SourceFormatYAML); err != nil {
//		log.Fatal(err) // *oaserrors.OutputError
//	}
package parser
