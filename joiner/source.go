package joiner

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasconsolidate/parser"
)

// Subsystem names the domain a source document describes.
type Subsystem string

const (
	// SubsystemCatalog covers catalogs, datasets, data services, and distributions
	SubsystemCatalog Subsystem = "catalog"
	// SubsystemNegotiation covers contract negotiation
	SubsystemNegotiation Subsystem = "negotiation"
	// SubsystemTransfer covers data transfer processes
	SubsystemTransfer Subsystem = "transfer"
)

// Role names the audience a source document is written for.
type Role string

const (
	// RoleAgent is the agent-facing (management) variant of a subsystem
	RoleAgent Role = "agent"
	// RoleProtocol is the protocol-facing variant of a subsystem
	RoleProtocol Role = "protocol"
)

// Key identifies a source slot by subsystem and role.
type Key struct {
	Subsystem Subsystem
	Role      Role
}

// String returns the key as "<subsystem>-<role>".
func (k Key) String() string {
	return string(k.Subsystem) + "-" + string(k.Role)
}

// Source is one document contributing component schemas.
type Source struct {
	// Name identifies the source in results and logs (e.g. "catalog_dsp")
	Name      string
	Subsystem Subsystem
	Role      Role
	// Document is read-only; merged schemas are copied out of it.
	Document *parser.Document
}

// Key returns the source's subsystem and role.
func (s Source) Key() Key {
	return Key{Subsystem: s.Subsystem, Role: s.Role}
}

// DefaultPriority returns the merge order, lowest priority first: when two
// sources define the same schema, the one later in this list wins.
func DefaultPriority() []Key {
	return []Key{
		{SubsystemCatalog, RoleAgent},
		{SubsystemCatalog, RoleProtocol},
		{SubsystemNegotiation, RoleAgent},
		{SubsystemNegotiation, RoleProtocol},
		{SubsystemTransfer, RoleAgent},
		{SubsystemTransfer, RoleProtocol},
	}
}

// Order arranges sources by priority. Each source must occupy a distinct
// slot listed in priority; anything else is an error.
func Order(sources []Source, priority []Key) ([]Source, error) {
	seen := make(map[Key]string, len(sources))
	for _, s := range sources {
		if !slices.Contains(priority, s.Key()) {
			return nil, fmt.Errorf("joiner: source %q has no priority slot (%s)", s.Name, s.Key())
		}
		if prev, dup := seen[s.Key()]; dup {
			return nil, fmt.Errorf("joiner: sources %q and %q both occupy %s", prev, s.Name, s.Key())
		}
		seen[s.Key()] = s.Name
	}

	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b Source) int {
		return slices.Index(priority, a.Key()) - slices.Index(priority, b.Key())
	})
	return ordered, nil
}
