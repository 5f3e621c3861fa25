package consolidator

import (
	"path/filepath"

	"github.com/erraggy/oasconsolidate/joiner"
	"github.com/erraggy/oasconsolidate/oaserrors"
)

// DefaultOutputName is the file name of the consolidated document.
const DefaultOutputName = "openapi_consolidated.yaml"

// Config locates the seven input documents and the output file.
type Config struct {
	// Gateway is the base document the consolidation starts from
	Gateway string

	CatalogAgent        string
	CatalogProtocol     string
	NegotiationAgent    string
	NegotiationProtocol string
	TransferAgent       string
	TransferProtocol    string

	// Output is where the consolidated YAML is written
	Output string
}

// DefaultConfig returns the standard layout under baseDir.
func DefaultConfig(baseDir string) Config {
	return Config{
		Gateway:             filepath.Join(baseDir, "fe_gateway.yaml"),
		CatalogAgent:        filepath.Join(baseDir, "catalog", "catalog_agent.json"),
		CatalogProtocol:     filepath.Join(baseDir, "catalog", "catalog_dsp.json"),
		NegotiationAgent:    filepath.Join(baseDir, "contracts", "negotiation_agent.json"),
		NegotiationProtocol: filepath.Join(baseDir, "contracts", "negotiation_dsp.yaml"),
		TransferAgent:       filepath.Join(baseDir, "transfer", "transfer_agent.yaml"),
		TransferProtocol:    filepath.Join(baseDir, "transfer", "transfer_dsp.yaml"),
		Output:              filepath.Join(baseDir, DefaultOutputName),
	}
}

// slot is one configured input.
type slot struct {
	option string
	key    joiner.Key // zero for the gateway
	path   string
}

// slots lists the inputs in load order: gateway first, then the domain
// documents in default merge priority.
func (c Config) slots() []slot {
	return []slot{
		{option: "gateway", path: c.Gateway},
		{option: "catalog-agent", key: joiner.Key{Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleAgent}, path: c.CatalogAgent},
		{option: "catalog-protocol", key: joiner.Key{Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleProtocol}, path: c.CatalogProtocol},
		{option: "negotiation-agent", key: joiner.Key{Subsystem: joiner.SubsystemNegotiation, Role: joiner.RoleAgent}, path: c.NegotiationAgent},
		{option: "negotiation-protocol", key: joiner.Key{Subsystem: joiner.SubsystemNegotiation, Role: joiner.RoleProtocol}, path: c.NegotiationProtocol},
		{option: "transfer-agent", key: joiner.Key{Subsystem: joiner.SubsystemTransfer, Role: joiner.RoleAgent}, path: c.TransferAgent},
		{option: "transfer-protocol", key: joiner.Key{Subsystem: joiner.SubsystemTransfer, Role: joiner.RoleProtocol}, path: c.TransferProtocol},
	}
}

// Validate checks that every path is set and that the output does not
// overwrite an input.
func (c Config) Validate() error {
	for _, s := range c.slots() {
		if s.path == "" {
			return &oaserrors.ConfigError{Option: s.option, Message: "path is required"}
		}
	}
	if c.Output == "" {
		return &oaserrors.ConfigError{Option: "output", Message: "path is required"}
	}
	out := filepath.Clean(c.Output)
	for _, s := range c.slots() {
		if filepath.Clean(s.path) == out {
			return &oaserrors.ConfigError{
				Option:  "output",
				Value:   c.Output,
				Message: "output would overwrite the " + s.option + " input",
			}
		}
	}
	return nil
}
