// Package fixer applies the consolidation fixes to an OpenAPI document.
//
// Each fix mutates the document in place and reports what it changed as a
// [Fix]. Fixes run in this order:
//
//   - Operation ids: RPC-style paths (containing /rpc/) take their post
//     operationId from the protocol-facing document selected by a [Route].
//     A path with no route or no match keeps its id.
//   - Error responses: every get, post, put, delete, and patch operation
//     declares 400, 401, 403, 404, and 500 with JSON content referencing
//     #/components/schemas/ErrorInfo. Existing descriptions are kept.
//   - Compatibility: nullable: true becomes a "null" member of the type,
//     and example becomes examples: [value]. See [FixCompatibility].
//
// # Quick Start
//
// Fix a file using functional options:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//
// Or fix an accumulator in place:
//
//	f := fixer.New()
//	f.Routes = fixer.DefaultRoutes(catalogDSP, negotiationDSP, transferDSP)
//	result := f.FixDocument(acc)
//
// All fixes are idempotent: fixing a fixed document reports no fixes.
//
// # Related Packages
//
//   - [github.com/erraggy/oasconsolidate/parser] - Load and write documents
//   - [github.com/erraggy/oasconsolidate/schema] - Typed schema views walked by the compatibility fix
//   - [github.com/erraggy/oasconsolidate/consolidator] - Runs the fixer as part of a consolidation
package fixer
