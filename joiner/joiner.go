package joiner

import (
	"log/slog"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/parser"
)

// joinerLogger is used for warnings in joiner functions.
// Tests can replace this with a discard logger to suppress expected warnings.
var joinerLogger = slog.Default()

// Owners recorded for schemas that did not come from a named source.
const (
	// OwnerBase marks schemas already present in the accumulator
	OwnerBase = "base"
	// OwnerAlias marks schemas registered under an alias name
	OwnerAlias = "alias"
	// OwnerFallback marks the built-in ErrorInfo schema
	OwnerFallback = "fallback"
	// OwnerBuiltin marks the ODRL policy schemas
	OwnerBuiltin = "builtin"
)

// ErrorInfoSchema is the shared error schema referenced by every error
// response.
const ErrorInfoSchema = "ErrorInfo"

// OdrlSchemaNames are the names the ODRL policy schema is installed under.
var OdrlSchemaNames = []string{"OdrlInfo", "OdrlPolicyInfo"}

// DefaultAliasEntities lists the entities whose New/Edit DTO schemas are
// also registered under the transposed name.
var DefaultAliasEntities = []string{"Catalog", "DataService", "Dataset", "Distribution"}

// Collision records a schema name defined more than once. The later
// definition replaces the earlier one.
type Collision struct {
	// Name is the schema name
	Name string
	// Previous is the owner of the replaced definition
	Previous string
	// Winner is the source whose definition was kept
	Winner string
	// Identical is true when both definitions hold the same data
	Identical bool
}

// Alias records a schema registered under a second name.
type Alias struct {
	// From is the producer-side name, e.g. NewDatasetDto
	From string
	// To is the consumer-side name, e.g. DatasetNewDto
	To string
}

// MergeResult describes a schema merge.
type MergeResult struct {
	// Collisions lists every overwrite, in merge order
	Collisions []Collision
	// Aliases lists the alias names registered
	Aliases []Alias
	// ErrorInfoSource is the owner of the final ErrorInfo definition: the
	// preferred source, whichever owner defined it last, or OwnerFallback
	ErrorInfoSource string
	// Merged is the number of schema entries copied from sources
	Merged int
	// Owners maps each schema name to the source that defined it last
	Owners map[string]string
}

// Merger copies component schemas from sources into an accumulator.
type Merger struct {
	// AliasEntities lists the entities to alias after the catalog sources.
	// Defaults to DefaultAliasEntities.
	AliasEntities []string
	// ErrorInfoFrom is the slot whose ErrorInfo wins over everything else.
	// Defaults to catalog-protocol.
	ErrorInfoFrom Key
}

// New creates a Merger with the default alias entities and ErrorInfo slot.
func New() *Merger {
	return &Merger{
		AliasEntities: DefaultAliasEntities,
		ErrorInfoFrom: Key{SubsystemCatalog, RoleProtocol},
	}
}

// MergeSchemas merges sources into acc with a default Merger.
func MergeSchemas(acc *parser.Document, sources []Source) *MergeResult {
	return New().Merge(acc, sources)
}

// Merge copies every components.schemas entry of each source into acc, in
// slice order. Later sources overwrite earlier ones; see Order to arrange
// sources by priority.
//
// After the last catalog source (or before the first source when there is
// none) each New<E>Dto / Edit<E>Dto schema present is copied to
// <E>NewDto / <E>EditDto. Once all sources are merged ErrorInfo is
// resolved and the ODRL policy schemas are installed.
//
// Sources are never modified and share no nodes with acc afterwards.
func (m *Merger) Merge(acc *parser.Document, sources []Source) *MergeResult {
	schemas := acc.EnsureSchemas()
	result := &MergeResult{Owners: make(map[string]string)}
	for _, name := range nodeutil.Keys(schemas) {
		result.Owners[name] = OwnerBase
	}

	aliasAt := lastCatalogIndex(sources) + 1
	for i, src := range sources {
		if i == aliasAt {
			m.registerAliases(acc, result)
		}
		m.mergeSource(acc, src, result)
	}
	if aliasAt == len(sources) {
		m.registerAliases(acc, result)
	}

	m.resolveErrorInfo(acc, sources, result)

	for _, name := range OdrlSchemaNames {
		nodeutil.Set(schemas, name, OdrlPolicySchema())
		result.Owners[name] = OwnerBuiltin
	}
	return result
}

func lastCatalogIndex(sources []Source) int {
	last := -1
	for i, src := range sources {
		if src.Subsystem == SubsystemCatalog {
			last = i
		}
	}
	return last
}

func (m *Merger) mergeSource(acc *parser.Document, src Source, result *MergeResult) {
	if src.Document == nil {
		return
	}
	srcSchemas := src.Document.Schemas()
	if srcSchemas == nil {
		if nodeutil.GetPath(src.Document.Node(), "components", "schemas") != nil {
			joinerLogger.Warn("joiner: components.schemas is not a mapping; skipping source", "source", src.Name)
		}
		return
	}

	schemas := acc.EnsureSchemas()
	for name, schema := range nodeutil.Pairs(srcSchemas) {
		if prev := nodeutil.Get(schemas, name); prev != nil {
			result.Collisions = append(result.Collisions, Collision{
				Name:      name,
				Previous:  result.Owners[name],
				Winner:    src.Name,
				Identical: nodeutil.Equal(prev, schema),
			})
		}
		nodeutil.Set(schemas, name, nodeutil.DeepCopy(schema))
		result.Owners[name] = src.Name
		result.Merged++
	}
}

// registerAliases copies New<E>Dto and Edit<E>Dto to <E>NewDto and
// <E>EditDto. Each alias is an independent copy of the definition present
// at this point of the merge.
func (m *Merger) registerAliases(acc *parser.Document, result *MergeResult) {
	schemas := acc.EnsureSchemas()
	for _, entity := range m.AliasEntities {
		for _, a := range []Alias{
			{From: "New" + entity + "Dto", To: entity + "NewDto"},
			{From: "Edit" + entity + "Dto", To: entity + "EditDto"},
		} {
			schema := nodeutil.Get(schemas, a.From)
			if schema == nil {
				continue
			}
			nodeutil.Set(schemas, a.To, nodeutil.DeepCopy(schema))
			result.Owners[a.To] = OwnerAlias
			result.Aliases = append(result.Aliases, a)
		}
	}
}

func (m *Merger) resolveErrorInfo(acc *parser.Document, sources []Source, result *MergeResult) {
	schemas := acc.EnsureSchemas()
	for _, src := range sources {
		if src.Key() != m.ErrorInfoFrom || src.Document == nil {
			continue
		}
		if preferred := src.Document.Schema(ErrorInfoSchema); preferred != nil {
			nodeutil.Set(schemas, ErrorInfoSchema, nodeutil.DeepCopy(preferred))
			result.Owners[ErrorInfoSchema] = src.Name
			result.ErrorInfoSource = src.Name
			return
		}
	}

	if nodeutil.Has(schemas, ErrorInfoSchema) {
		result.ErrorInfoSource = result.Owners[ErrorInfoSchema]
		return
	}

	nodeutil.Set(schemas, ErrorInfoSchema, ErrorInfoFallback())
	result.Owners[ErrorInfoSchema] = OwnerFallback
	result.ErrorInfoSource = OwnerFallback
}
