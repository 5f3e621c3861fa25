package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/internal/cliutil"
	"github.com/erraggy/oasconsolidate/parser"
)

// FixFlags contains flags for the fix command
type FixFlags struct {
	Output         string
	ErrorResponses bool
	Quiet          bool
	Verbose        bool
}

// SetupFixFlags creates and configures a FlagSet for the fix command.
// Returns the FlagSet and a FixFlags struct with bound flag variables.
func SetupFixFlags() (*flag.FlagSet, *FixFlags) {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	flags := &FixFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.ErrorResponses, "error-responses", false, "also add and normalize the standard 4xx/5xx error responses")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "list every applied fix")
	fs.BoolVar(&flags.Verbose, "verbose", false, "list every applied fix")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasconsolidate fix [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Rewrite OpenAPI 3.0 schema idioms for 3.1: nullable becomes a type union\n")
		cliutil.Writef(fs.Output(), "and example becomes examples. The source format is preserved.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasconsolidate fix openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasconsolidate fix -o fixed.json catalog_dsp.json\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasconsolidate fix -error-responses -\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		cliutil.Writef(fs.Output(), "  - Use -q to suppress diagnostic output for pipelining\n")
	}

	return fs, flags
}

// EnabledFixes returns the fix types selected by the flags.
func (f *FixFlags) EnabledFixes() []fixer.FixType {
	fixes := []fixer.FixType{fixer.FixTypeNullableToTypeUnion, fixer.FixTypeExampleToExamples}
	if f.ErrorResponses {
		fixes = append(fixes, fixer.FixTypeAddedErrorResponse, fixer.FixTypeNormalizedErrorResponse)
	}
	return fixes
}

// HandleFix executes the fix command
func HandleFix(args []string) error {
	return runFix(args, os.Stdin, os.Stdout, os.Stderr)
}

func runFix(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupFixFlags()
	fs.SetOutput(stderr)

	if err := parseFlags(fs, args); err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("fix command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)
	var (
		parsed *parser.ParseResult
		err    error
	)
	if specPath == StdinFilePath {
		data, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		parsed, err = parser.ParseBytes(data, parser.DetectFormat(data), "<stdin>")
	} else {
		parsed, err = parser.ParseFile(specPath)
	}
	if err != nil {
		return err
	}

	result, err := fixer.FixWithOptions(
		fixer.WithParsed(*parsed),
		fixer.WithEnabledFixes(flags.EnabledFixes()...),
	)
	if err != nil {
		return fmt.Errorf("fixing document: %w", err)
	}

	if !flags.Quiet {
		printFixSummary(stderr, specPath, result, flags.Verbose)
	}

	if flags.Output != "" {
		if err := parser.WriteFile(result.Document, flags.Output, result.SourceFormat); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(stderr, "\nOutput written to: %s\n", flags.Output)
		}
		return nil
	}

	data, err := parser.Marshal(result.Document, result.SourceFormat)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func printFixSummary(w io.Writer, specPath string, result *fixer.FixResult, verbose bool) {
	p := cliutil.NewPrinter(w)
	p.Printf("OpenAPI Compatibility Fixer\n")
	p.Printf("===========================\n\n")
	p.Printf("Specification: %s\n", specPath)
	p.Printf("Format:        %s\n", result.SourceFormat)
	p.Printf("Schemas:       %d\n", result.Stats.SchemaCount)
	p.Printf("Operations:    %d\n\n", result.Stats.OperationCount)

	if !result.HasFixes() {
		p.Printf("✓ No fixes needed\n")
		return
	}
	p.Printf("✓ Applied %d fix(es)\n", result.FixCount)
	counts := result.CountByType()
	for _, ft := range fixer.AllFixTypes() {
		if n := counts[ft]; n > 0 {
			p.Printf("  %-27s %d\n", ft, n)
		}
	}
	if verbose {
		p.Printf("\nFixes:\n")
		for _, fix := range result.Fixes {
			p.Printf("  [%s] %s: %s\n", fix.Type, fix.Path, fix.Description)
		}
	}
}
