package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/oaserrors"
	"github.com/erraggy/oasconsolidate/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacySpec = `openapi: 3.0.3
info:
  title: Legacy
  version: "1.0"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200":
          description: OK
components:
  schemas:
    Name:
      type: string
      nullable: true
      example: bob
`

func TestSetupFixFlags(t *testing.T) {
	fs, flags := SetupFixFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "", flags.Output)
		assert.False(t, flags.ErrorResponses)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"-o", "fixed.yaml", "-error-responses", "-q", "input.yaml"}))
		assert.Equal(t, "fixed.yaml", flags.Output)
		assert.True(t, flags.ErrorResponses)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "input.yaml", fs.Arg(0))
	})

	t.Run("long flags", func(t *testing.T) {
		fs2, flags2 := SetupFixFlags()
		require.NoError(t, fs2.Parse([]string{"--output", "out.yaml", "--quiet", "--verbose", "in.yaml"}))
		assert.Equal(t, "out.yaml", flags2.Output)
		assert.True(t, flags2.Quiet)
		assert.True(t, flags2.Verbose)
	})
}

func TestFixFlags_EnabledFixes(t *testing.T) {
	flags := &FixFlags{}
	assert.Equal(t, []fixer.FixType{fixer.FixTypeNullableToTypeUnion, fixer.FixTypeExampleToExamples}, flags.EnabledFixes())

	flags.ErrorResponses = true
	assert.Equal(t, []fixer.FixType{
		fixer.FixTypeNullableToTypeUnion, fixer.FixTypeExampleToExamples,
		fixer.FixTypeAddedErrorResponse, fixer.FixTypeNormalizedErrorResponse,
	}, flags.EnabledFixes())
}

func TestRunFix_FileToStdout(t *testing.T) {
	in := filepath.Join(t.TempDir(), "legacy.yaml")
	require.NoError(t, os.WriteFile(in, []byte(legacySpec), 0o600))
	var stdout, stderr bytes.Buffer

	require.NoError(t, runFix([]string{"-v", in}, strings.NewReader(""), &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, `- "null"`)
	assert.Contains(t, out, "examples:")
	assert.NotContains(t, out, "nullable")
	assert.NotContains(t, out, `"400"`)

	diag := stderr.String()
	assert.Contains(t, diag, "✓ Applied 2 fix(es)")
	assert.Contains(t, diag, "[nullable-to-type-union] $.components.schemas['Name']")
	assert.Contains(t, diag, "[example-to-examples] $.components.schemas['Name']")
}

func TestRunFix_StdinJSON(t *testing.T) {
	src := `{"openapi": "3.0.3", "paths": {}, "components": {"schemas": {"Count": {"type": "integer", "nullable": true}}}}`
	var stdout, stderr bytes.Buffer

	require.NoError(t, runFix([]string{"-q", StdinFilePath}, strings.NewReader(src), &stdout, &stderr))
	assert.Empty(t, stderr.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc), "JSON in, JSON out")
	count := doc["components"].(map[string]any)["schemas"].(map[string]any)["Count"].(map[string]any)
	assert.Equal(t, []any{"integer", "null"}, count["type"])
}

func TestRunFix_ErrorResponsesToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "legacy.yaml")
	out := filepath.Join(dir, "fixed.yaml")
	require.NoError(t, os.WriteFile(in, []byte(legacySpec), 0o600))
	var stdout, stderr bytes.Buffer

	require.NoError(t, runFix([]string{"-error-responses", "-o", out, in}, strings.NewReader(""), &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Output written to: "+out)
	assert.Contains(t, stderr.String(), "✓ Applied 7 fix(es)")

	result, err := parser.ParseFile(out)
	require.NoError(t, err)
	responses := nodeutil.GetPath(result.Document.Paths(), "/ping", "get", "responses")
	assert.Equal(t, []string{"200", "400", "401", "403", "404", "500"}, nodeutil.Keys(responses))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRunFix_AlreadyFixed(t *testing.T) {
	in := filepath.Join(t.TempDir(), "modern.yaml")
	require.NoError(t, os.WriteFile(in, []byte("openapi: 3.1.0\ncomponents:\n  schemas:\n    A:\n      type: [string, \"null\"]\n"), 0o600))
	var stdout, stderr bytes.Buffer

	require.NoError(t, runFix([]string{in}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stderr.String(), "✓ No fixes needed")
}

func TestRunFix_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		is    error
		msg   string
	}{
		{name: "no args", args: nil, msg: "requires exactly one file"},
		{name: "two args", args: []string{"a.yaml", "b.yaml"}, msg: "requires exactly one file"},
		{name: "missing file", args: []string{"does-not-exist.yaml"}, is: oaserrors.ErrParse},
		{name: "malformed stdin", args: []string{StdinFilePath}, stdin: "{\"openapi\": ", is: oaserrors.ErrParse},
		{name: "unwritable output", args: []string{"-o", "/nonexistent-dir/x.yaml", StdinFilePath}, stdin: legacySpec, is: oaserrors.ErrOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runFix(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestHandleFix_Help(t *testing.T) {
	assert.NoError(t, HandleFix([]string{"--help"}))
}
