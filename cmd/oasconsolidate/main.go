// Command oasconsolidate merges the connector's OpenAPI documents into one
// consolidated document and offers a standalone 3.1 compatibility fixer.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	oasconsolidate "github.com/erraggy/oasconsolidate"
	"github.com/erraggy/oasconsolidate/cmd/oasconsolidate/commands"
	"github.com/erraggy/oasconsolidate/internal/cliutil"
	"github.com/joho/godotenv"
)

// commandNames lists the subcommands in help order.
var commandNames = []string{"consolidate", "fix", "mcp", "version", "help"}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// loadDotEnv loads path into the environment when it exists. Variables
// already set are not overridden.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// run dispatches args to a subcommand and returns the process exit code.
// With no subcommand (or only flags) consolidate runs.
func run(args []string, stdout, stderr io.Writer) int {
	command := "consolidate"
	if len(args) > 0 && (!strings.HasPrefix(args[0], "-") || args[0] == "--version") {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "consolidate":
		err = commands.HandleConsolidate(args)
	case "fix":
		err = commands.HandleFix(args)
	case "mcp":
		err = commands.HandleMCP(args)
	case "version", "--version":
		cliutil.Writef(stdout, "oasconsolidate %s\n", oasconsolidate.Version())
		cliutil.Writef(stdout, "%s", oasconsolidate.BuildInfo())
	case "help":
		printUsage(stdout)
	default:
		cliutil.Writef(stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(stderr, "\n")
		printUsage(stderr)
		return 1
	}

	if err != nil {
		cliutil.Writef(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	cliutil.Writef(w, "oasconsolidate - OpenAPI consolidation for the connector gateway\n\n")
	cliutil.Writef(w, "Usage:\n")
	cliutil.Writef(w, "  oasconsolidate [consolidate] [flags]\n")
	cliutil.Writef(w, "  oasconsolidate <command> [flags] [args]\n\n")
	cliutil.Writef(w, "Commands:\n")
	cliutil.Writef(w, "  consolidate  Merge the gateway and subsystem documents (default)\n")
	cliutil.Writef(w, "  fix          Rewrite nullable/example for OpenAPI 3.1 in one document\n")
	cliutil.Writef(w, "  mcp          Serve the tools over MCP on stdio\n")
	cliutil.Writef(w, "  version      Show version and build information\n")
	cliutil.Writef(w, "  help         Show this help message\n\n")
	cliutil.Writef(w, "Run 'oasconsolidate <command> -h' for command flags.\n")
	cliutil.Writef(w, "A .env file in the working directory is loaded first when present.\n")
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
