// Package schema provides typed views over OpenAPI schema nodes.
//
// A schema node is classified into one of four variants, each implementing
// [Schema]:
//
//   - [ObjectSchema]: declares type object, properties, or additionalProperties
//   - [ArraySchema]: declares type array or items
//   - [CompositionSchema]: declares allOf, oneOf, or anyOf
//   - [OtherSchema]: everything else (scalars, bare $ref, empty schemas)
//
// Whatever the variant, every schema carries its nested schemas in
// [Subschemas]. Classification only describes what a node primarily is; it
// never hides a nested schema, so a walk over any variant reaches the same
// set of children: each property value, items, every allOf/oneOf/anyOf
// element, and additionalProperties when it is a mapping (a boolean
// additionalProperties is not a schema).
//
// Views share their nodes with the document, so edits made through
// [Schema.Node] land in the document directly.
//
// # Walking
//
// [Walk] visits a schema and its subschemas in pre-order with a JSON path
// for each visit:
//
//	schema.Walk(schema.Parse(node), "$.components.schemas['Pet']",
//		func(path string, s schema.Schema) schema.Action {
//			fmt.Println(path, s.Kind())
//			return schema.Continue
//		})
package schema
