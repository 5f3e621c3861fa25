package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasconsolidate/internal/cliutil"
	"github.com/erraggy/oasconsolidate/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through OASCONSOLIDATE_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasconsolidate mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the consolidate and fix_compat tools over MCP on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  %s_MCP_BASE_DIR        default base_dir for the consolidate tool\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "  %s_MCP_ALLOW_WRITE     allow tools to write output files (default true)\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "  %s_MCP_MAX_INLINE_SIZE maximum inline content size in bytes\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "  %s_MCP_FIX_LIMIT       default number of fixes returned\n", EnvVarPrefix)
	}
	return fs
}

// HandleMCP executes the mcp command, blocking until the client disconnects
// or the process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
