// Package pathutil builds the JSON-path-like locations used in fix reports
// and the $ref strings written into documents.
//
// Locations start at [Root] and use dotted fields for fixed keywords and
// bracketed, single-quoted keys for user-defined names:
//
//	$.paths['/catalogs'].get.responses['404'].content
//	$.components.schemas['Catalog'].properties['title']
//	$.components.schemas['Dto'].allOf[1]
package pathutil
