// Package joiner merges component schemas from several OpenAPI documents
// into one accumulator document.
//
// Sources are merged in slice order and the last definition of a name wins.
// Overwrites are not errors; each one is reported as a [Collision] so callers
// can log or inspect them. [DefaultPriority] and [Order] make the merge order
// explicit data rather than call order.
//
// # Quick Start
//
//	sources, err := joiner.Order([]joiner.Source{
//		{Name: "catalog_dsp", Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleProtocol, Document: dsp},
//		{Name: "catalog_agent", Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleAgent, Document: agent},
//	}, joiner.DefaultPriority())
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := joiner.MergeSchemas(acc, sources)
//	fmt.Printf("merged %d schemas, %d collisions\n", result.Merged, len(result.Collisions))
//
// # Synthesized Schemas
//
// Besides copying, a merge adds:
//
//   - Aliases: after the catalog sources, New<E>Dto and Edit<E>Dto are also
//     registered as <E>NewDto and <E>EditDto for Catalog, DataService,
//     Dataset, and Distribution.
//   - ErrorInfo: taken from the catalog protocol document when it defines
//     one, otherwise kept if already merged, otherwise a fixed fallback.
//   - OdrlInfo and OdrlPolicyInfo: a fixed ODRL policy schema, always
//     installed.
package joiner
