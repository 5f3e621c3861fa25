package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasconsolidate/consolidator"
	"github.com/erraggy/oasconsolidate/internal/cliutil"
)

// ConsolidateFlags contains flags for the consolidate command
type ConsolidateFlags struct {
	BaseDir string

	Gateway             string
	CatalogAgent        string
	CatalogProtocol     string
	NegotiationAgent    string
	NegotiationProtocol string
	TransferAgent       string
	TransferProtocol    string

	Output  string
	Quiet   bool
	Verbose bool
	LogFile string
	Config  string
}

// SetupConsolidateFlags creates and configures a FlagSet for the consolidate command.
// Returns the FlagSet and a ConsolidateFlags struct with bound flag variables.
func SetupConsolidateFlags() (*flag.FlagSet, *ConsolidateFlags) {
	fs := flag.NewFlagSet("consolidate", flag.ContinueOnError)
	flags := &ConsolidateFlags{}

	fs.StringVar(&flags.BaseDir, "base-dir", ".", "directory holding the standard input layout")
	fs.StringVar(&flags.Gateway, "gateway", "", "gateway document (default <base-dir>/fe_gateway.yaml)")
	fs.StringVar(&flags.CatalogAgent, "catalog-agent", "", "catalog agent document (default <base-dir>/catalog/catalog_agent.json)")
	fs.StringVar(&flags.CatalogProtocol, "catalog-protocol", "", "catalog protocol document (default <base-dir>/catalog/catalog_dsp.json)")
	fs.StringVar(&flags.NegotiationAgent, "negotiation-agent", "", "negotiation agent document (default <base-dir>/contracts/negotiation_agent.json)")
	fs.StringVar(&flags.NegotiationProtocol, "negotiation-protocol", "", "negotiation protocol document (default <base-dir>/contracts/negotiation_dsp.yaml)")
	fs.StringVar(&flags.TransferAgent, "transfer-agent", "", "transfer agent document (default <base-dir>/transfer/transfer_agent.yaml)")
	fs.StringVar(&flags.TransferProtocol, "transfer-protocol", "", "transfer protocol document (default <base-dir>/transfer/transfer_dsp.yaml)")
	fs.StringVar(&flags.Output, "o", "", "output file (default <base-dir>/"+consolidator.DefaultOutputName+")")
	fs.StringVar(&flags.Output, "output", "", "output file (default <base-dir>/"+consolidator.DefaultOutputName+")")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only warnings and errors, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only warnings and errors, no summary")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log every overwrite and fix")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log every overwrite and fix")
	fs.StringVar(&flags.LogFile, "log-file", "", "also write JSON log records to this file")
	fs.StringVar(&flags.Config, configFlag, "", "plain-text config file of \"flag value\" lines")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasconsolidate consolidate [flags]\n\n")
		cliutil.Writef(fs.Output(), "Merge the gateway document and the six subsystem documents into one\n")
		cliutil.Writef(fs.Output(), "OpenAPI 3.1 document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEvery flag can also be set with an %s_ environment variable\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "(e.g. %s_BASE_DIR) or in the -config file.\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasconsolidate consolidate -base-dir static/specs/openapi\n")
		cliutil.Writef(fs.Output(), "  oasconsolidate -base-dir specs -o dist/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasconsolidate consolidate -config consolidate.conf -v\n")
	}

	return fs, flags
}

// ConsolidatorConfig resolves the input and output paths: explicit flags
// override the base-dir layout.
func (f *ConsolidateFlags) ConsolidatorConfig() consolidator.Config {
	cfg := consolidator.DefaultConfig(f.BaseDir)
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Gateway, f.Gateway)
	override(&cfg.CatalogAgent, f.CatalogAgent)
	override(&cfg.CatalogProtocol, f.CatalogProtocol)
	override(&cfg.NegotiationAgent, f.NegotiationAgent)
	override(&cfg.NegotiationProtocol, f.NegotiationProtocol)
	override(&cfg.TransferAgent, f.TransferAgent)
	override(&cfg.TransferProtocol, f.TransferProtocol)
	override(&cfg.Output, f.Output)
	return cfg
}

// HandleConsolidate executes the consolidate command
func HandleConsolidate(args []string) error {
	return runConsolidate(args, os.Stderr)
}

func runConsolidate(args []string, stderr io.Writer) error {
	fs, flags := SetupConsolidateFlags()
	fs.SetOutput(stderr)

	if err := parseFlags(fs, args); err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("consolidate command takes no arguments, got %q", fs.Args())
	}

	logger, closeLog, err := cliutil.NewLogger(cliutil.LoggerOptions{
		Stderr:  stderr,
		Verbose: flags.Verbose,
		Quiet:   flags.Quiet,
		LogFile: flags.LogFile,
	})
	if err != nil {
		return err
	}

	c, err := consolidator.New(flags.ConsolidatorConfig(), consolidator.WithLogger(logger))
	if err != nil {
		return errors.Join(err, closeLog())
	}

	result, err := c.Run()
	if err != nil {
		return errors.Join(fmt.Errorf("consolidation failed: %w", err), closeLog())
	}

	if !flags.Quiet {
		printConsolidateSummary(stderr, c.Config().Output, result)
	}
	return closeLog()
}

func printConsolidateSummary(w io.Writer, output string, result *consolidator.Result) {
	p := cliutil.NewPrinter(w)
	p.Printf("\nOpenAPI Consolidation\n")
	p.Printf("=====================\n\n")
	p.Printf("Paths:        %d\n", result.Stats.PathCount)
	p.Printf("Operations:   %d\n", result.Stats.OperationCount)
	p.Printf("Schemas:      %d\n", result.Stats.SchemaCount)
	p.Printf("Merged:       %d\n", result.Merge.Merged)
	p.Printf("Overwritten:  %d\n", len(result.Merge.Collisions))
	p.Printf("Aliases:      %d\n", len(result.Merge.Aliases))
	p.Printf("ErrorInfo:    %s\n", result.Merge.ErrorInfoSource)
	p.Printf("Fixes:        %d\n", result.FixCount)
	p.Printf("Load Time:    %v\n", result.LoadTime)
	p.Printf("Total Time:   %v\n\n", result.TotalTime)
	p.Printf("✓ Wrote %s\n", output)
}
