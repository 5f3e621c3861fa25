package consolidator

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/joiner"
	"github.com/erraggy/oasconsolidate/parser"
)

// Inputs holds already-loaded documents. Gateway is required; a nil domain
// document contributes nothing.
type Inputs struct {
	Gateway *parser.Document

	CatalogAgent        *parser.Document
	CatalogProtocol     *parser.Document
	NegotiationAgent    *parser.Document
	NegotiationProtocol *parser.Document
	TransferAgent       *parser.Document
	TransferProtocol    *parser.Document

	// Names labels each domain document in collisions and logs, keyed by
	// slot ("catalog-agent", ...). Missing names default to the slot.
	Names map[joiner.Key]string
}

func (in Inputs) sources() []joiner.Source {
	docs := map[joiner.Key]*parser.Document{
		{Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleAgent}:        in.CatalogAgent,
		{Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleProtocol}:     in.CatalogProtocol,
		{Subsystem: joiner.SubsystemNegotiation, Role: joiner.RoleAgent}:    in.NegotiationAgent,
		{Subsystem: joiner.SubsystemNegotiation, Role: joiner.RoleProtocol}: in.NegotiationProtocol,
		{Subsystem: joiner.SubsystemTransfer, Role: joiner.RoleAgent}:       in.TransferAgent,
		{Subsystem: joiner.SubsystemTransfer, Role: joiner.RoleProtocol}:    in.TransferProtocol,
	}
	var sources []joiner.Source
	for _, key := range joiner.DefaultPriority() {
		doc := docs[key]
		if doc == nil {
			continue
		}
		name := in.Names[key]
		if name == "" {
			name = key.String()
		}
		sources = append(sources, joiner.Source{
			Name:      name,
			Subsystem: key.Subsystem,
			Role:      key.Role,
			Document:  doc,
		})
	}
	return sources
}

// Result contains the consolidated document and what was done to build it
type Result struct {
	// Document is the consolidated document
	Document *parser.Document
	// Stats contains statistical information about the consolidated document
	Stats parser.DocumentStats
	// Merge describes the schema merge
	Merge *joiner.MergeResult
	// Fixes contains every fix applied after the merge
	Fixes []fixer.Fix
	// FixCount is the number of fixes applied
	FixCount int
	// LoadTime is how long loading the inputs took (zero for in-memory inputs)
	LoadTime time.Duration
	// TotalTime is how long the whole consolidation took
	TotalTime time.Duration
}

// Option is a function that configures a consolidation
type Option func(*options) error

type options struct {
	logger       *slog.Logger
	enabledFixes []fixer.FixType
}

// WithLogger sets the logger for progress records. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithEnabledFixes limits the post-merge fixes to the given types.
// With no types, all fixes run.
func WithEnabledFixes(fixes ...fixer.FixType) Option {
	return func(o *options) error {
		for _, ft := range fixes {
			if _, err := fixer.ParseFixType(string(ft)); err != nil {
				return err
			}
		}
		o.enabledFixes = fixes
		return nil
	}
}

func applyOptions(opts ...Option) (*options, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("consolidator: invalid options: %w", err)
		}
	}
	return o, nil
}

// Consolidator builds the consolidated document for one Config.
type Consolidator struct {
	cfg  Config
	opts *options
}

// New validates cfg and opts and returns a Consolidator.
func New(cfg Config, opts ...Option) (*Consolidator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consolidator: %w", err)
	}
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Consolidator{cfg: cfg, opts: o}, nil
}

// Config returns the configuration.
func (c *Consolidator) Config() Config {
	return c.cfg
}

// Consolidate loads all seven inputs, then merges and fixes them. Nothing
// is merged unless every input loads; the first load failure is returned.
func (c *Consolidator) Consolidate() (*Result, error) {
	start := time.Now()
	log := c.opts.logger

	log.Info("loading documents", "count", len(c.cfg.slots()))
	loaded := make(map[string]*parser.Document, len(c.cfg.slots()))
	in := Inputs{Names: make(map[joiner.Key]string)}
	for _, s := range c.cfg.slots() {
		result, err := parser.ParseFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("consolidator: loading %s document: %w", s.option, err)
		}
		log.Debug("loaded document",
			"input", s.option,
			"path", s.path,
			"format", result.SourceFormat,
			"schemas", result.Stats.SchemaCount,
			"operations", result.Stats.OperationCount)
		loaded[s.option] = result.Document
		if s.key != (joiner.Key{}) {
			in.Names[s.key] = filepath.Base(s.path)
		}
	}
	loadTime := time.Since(start)

	in.Gateway = loaded["gateway"]
	in.CatalogAgent = loaded["catalog-agent"]
	in.CatalogProtocol = loaded["catalog-protocol"]
	in.NegotiationAgent = loaded["negotiation-agent"]
	in.NegotiationProtocol = loaded["negotiation-protocol"]
	in.TransferAgent = loaded["transfer-agent"]
	in.TransferProtocol = loaded["transfer-protocol"]

	result, err := consolidate(in, c.opts)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	result.TotalTime = time.Since(start)
	return result, nil
}

// WriteResult writes the consolidated document to Config.Output.
func (c *Consolidator) WriteResult(result *Result) error {
	if result == nil || result.Document == nil {
		return errors.New("consolidator: no document to write")
	}
	c.opts.logger.Info("writing output", "path", c.cfg.Output)
	if err := parser.WriteFile(result.Document, c.cfg.Output, parser.SourceFormatYAML); err != nil {
		return fmt.Errorf("consolidator: %w", err)
	}
	return nil
}

// Run consolidates and writes the result.
func (c *Consolidator) Run() (*Result, error) {
	result, err := c.Consolidate()
	if err != nil {
		return nil, err
	}
	if err := c.WriteResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConsolidateDocuments runs the pipeline on already-loaded documents. The
// inputs are not modified.
func ConsolidateDocuments(in Inputs, opts ...Option) (*Result, error) {
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := consolidate(in, o)
	if err != nil {
		return nil, err
	}
	result.TotalTime = time.Since(start)
	return result, nil
}

func consolidate(in Inputs, o *options) (*Result, error) {
	if in.Gateway == nil {
		return nil, errors.New("consolidator: gateway document is required")
	}
	log := o.logger

	acc := in.Gateway.Copy()

	log.Info("merging schemas")
	merge := joiner.MergeSchemas(acc, in.sources())
	for _, col := range merge.Collisions {
		log.Debug("schema overwritten",
			"schema", col.Name,
			"previous", col.Previous,
			"winner", col.Winner,
			"identical", col.Identical)
	}
	log.Info("merged schemas",
		"merged", merge.Merged,
		"collisions", len(merge.Collisions),
		"aliases", len(merge.Aliases),
		"errorInfo", merge.ErrorInfoSource)

	f := fixer.New()
	f.EnabledFixes = o.enabledFixes
	f.Routes = fixer.DefaultRoutes(in.CatalogProtocol, in.NegotiationProtocol, in.TransferProtocol)
	fixed := f.FixDocument(acc)
	logFixes(log, fixed)

	return &Result{
		Document: acc,
		Stats:    acc.Stats(),
		Merge:    merge,
		Fixes:    fixed.Fixes,
		FixCount: fixed.FixCount,
	}, nil
}

func logFixes(log *slog.Logger, fixed *fixer.FixResult) {
	for _, fix := range fixed.Fixes {
		switch fix.Type {
		case fixer.FixTypeReconciledOperationID:
			log.Info("updated operation id", "path", fix.Path, "from", fix.Before, "to", fix.After)
		default:
			log.Debug("applied fix", "type", fix.Type, "path", fix.Path, "description", fix.Description)
		}
	}
	counts := fixed.CountByType()
	log.Info("fixed error responses",
		"added", counts[fixer.FixTypeAddedErrorResponse],
		"normalized", counts[fixer.FixTypeNormalizedErrorResponse])
	log.Info("fixed 3.1 compatibility",
		"nullable", counts[fixer.FixTypeNullableToTypeUnion],
		"examples", counts[fixer.FixTypeExampleToExamples])
}
