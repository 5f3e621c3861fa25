package fixer

import "github.com/erraggy/oasconsolidate/parser"

// applyFixPipeline runs the enabled fixes on doc.
func (f *Fixer) applyFixPipeline(doc *parser.Document, result *FixResult) {
	// Apply enabled fixes in order:
	// 1. RPC operation ids
	if f.isFixEnabled(FixTypeReconciledOperationID) {
		result.Fixes = append(result.Fixes, ReconcileOperationIDs(doc, f.Routes)...)
	}

	// 2. Standard error responses (added and normalized in one pass)
	addEnabled := f.isFixEnabled(FixTypeAddedErrorResponse)
	normalizeEnabled := f.isFixEnabled(FixTypeNormalizedErrorResponse)
	if addEnabled || normalizeEnabled {
		result.Fixes = append(result.Fixes, normalizeErrorResponses(doc, addEnabled, normalizeEnabled)...)
	}

	// 3. 3.1 compatibility (nullable and example), applied per schema node
	nullable := f.isFixEnabled(FixTypeNullableToTypeUnion)
	examples := f.isFixEnabled(FixTypeExampleToExamples)
	if nullable || examples {
		result.Fixes = append(result.Fixes, fixCompatibility(doc, nullable, examples)...)
	}

	// Update result
	result.Document = doc
	result.FixCount = len(result.Fixes)
	result.Stats = doc.Stats()
}
