// Package commands provides CLI command handlers for oasconsolidate.
package commands

import (
	"errors"
	"flag"

	"github.com/peterbourgon/ff/v3"
)

// EnvVarPrefix prefixes the environment variable bound to every flag:
// -base-dir is read from OASCONSOLIDATE_BASE_DIR.
const EnvVarPrefix = "OASCONSOLIDATE"

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// configFlag names the flag holding an optional plain-text config file of
// "flag value" lines.
const configFlag = "config"

// parseFlags parses args, then environment variables, then the config file
// named by -config (when the flag set defines it). Earlier sources win.
func parseFlags(fs *flag.FlagSet, args []string) error {
	return ff.Parse(fs, args,
		ff.WithEnvVarPrefix(EnvVarPrefix),
		ff.WithConfigFileFlag(configFlag),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	)
}

// isHelp reports whether err came from -h or -help.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
