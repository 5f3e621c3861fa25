package consolidator

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/joiner"
	"github.com/erraggy/oasconsolidate/oaserrors"
	"github.com/erraggy/oasconsolidate/parser"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig("testdata")
	cfg.Output = filepath.Join(t.TempDir(), DefaultOutputName)
	return cfg
}

func runFixtures(t *testing.T, opts ...Option) (*Result, Config) {
	t.Helper()
	cfg := testConfig(t)
	c, err := New(cfg, append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	result, err := c.Run()
	require.NoError(t, err)
	return result, cfg
}

func TestRun_SchemaMerge(t *testing.T) {
	result, _ := runFixtures(t)
	doc := result.Document

	want := []string{
		"Catalog", "Foo", "NewCatalogDto", "EditDatasetDto", "ErrorInfo", "NewDatasetDto",
		"CatalogNewDto", "DatasetNewDto", "DatasetEditDto",
		"NegotiationDto", "TransferDto", "OdrlInfo", "OdrlPolicyInfo",
	}
	if diff := cmp.Diff(want, nodeutil.Keys(doc.Schemas())); diff != "" {
		t.Errorf("schema order (-want +got):\n%s", diff)
	}

	// last source wins
	assert.Equal(t, "transfer_dsp", nodeutil.Get(doc.Schema("Foo"), "description").Value)
	var fooWinners []string
	for _, col := range result.Merge.Collisions {
		if col.Name == "Foo" {
			fooWinners = append(fooWinners, col.Winner)
		}
	}
	assert.Equal(t, []string{"catalog_agent.json", "catalog_dsp.json", "negotiation_agent.json", "transfer_dsp.yaml"}, fooWinners)

	assert.Equal(t, []joiner.Alias{
		{From: "NewCatalogDto", To: "CatalogNewDto"},
		{From: "NewDatasetDto", To: "DatasetNewDto"},
		{From: "EditDatasetDto", To: "DatasetEditDto"},
	}, result.Merge.Aliases)

	// Aliases stay deep-equal to their catalog definitions after fixing.
	assert.True(t, nodeutil.Equal(doc.Schema("NewCatalogDto"), doc.Schema("CatalogNewDto")))
	assert.True(t, nodeutil.Equal(doc.Schema("EditDatasetDto"), doc.Schema("DatasetEditDto")))
	assert.Equal(t, "object", nodeutil.Get(doc.Schema("DatasetNewDto"), "type").Value)
	assert.Equal(t, "string", nodeutil.Get(doc.Schema("NewDatasetDto"), "type").Value)

	// ErrorInfo comes from the catalog protocol document even though a
	// later source redefined it.
	assert.Equal(t, "catalog_dsp.json", result.Merge.ErrorInfoSource)
	assert.Nil(t, nodeutil.Get(doc.Schema("ErrorInfo"), "description"))
	assert.Equal(t, 2, nodeutil.Len(nodeutil.Get(doc.Schema("ErrorInfo"), "required")))

	assert.True(t, nodeutil.Equal(doc.Schema("OdrlInfo"), doc.Schema("OdrlPolicyInfo")))
}

func TestRun_OperationIDs(t *testing.T) {
	result, _ := runFixtures(t)
	paths := result.Document.Paths()

	opID := func(path string) string {
		return nodeutil.GetPath(paths, path, "post", "operationId").Value
	}
	assert.Equal(t, "setupCatalogRequest", opID("/catalogs/{id}/rpc/setup-catalog-request"))
	assert.Equal(t, "setupNegotiationRequest", opID("/negotiations/rpc/setup-request"))
	assert.Equal(t, "keepTransferId", opID("/transfers/rpc/unknown-thing"))
}

func TestRun_ErrorResponses(t *testing.T) {
	result, _ := runFixtures(t)

	count := 0
	for op := range result.Document.Operations() {
		count++
		responses := nodeutil.Get(op.Node, "responses")
		for _, code := range []string{"400", "401", "403", "404", "500"} {
			ref := nodeutil.GetPath(responses, code, "content", "application/json", "schema", "$ref")
			require.NotNil(t, ref, "%s %s %s", op.Method, op.Path, code)
			assert.Equal(t, fixer.ErrorInfoRef, ref.Value)
		}
	}
	assert.Equal(t, 4, count)

	notFound := nodeutil.GetPath(result.Document.Paths(), "/catalogs", "get", "responses", "404", "description")
	assert.Equal(t, "No catalogs configured", notFound.Value)
}

func TestRun_Compatibility(t *testing.T) {
	result, _ := runFixtures(t)
	doc := result.Document

	assert.Empty(t, fixer.FixCompatibility(doc), "no nullable or example markers remain")

	title := nodeutil.GetPath(doc.Schema("Catalog"), "properties", "title", "type")
	assert.Equal(t, []string{"string", "null"}, []string{title.Content[0].Value, title.Content[1].Value})

	state := nodeutil.GetPath(doc.Schema("TransferDto"), "properties", "state")
	assert.Equal(t, "REQUESTED", nodeutil.Get(state, "examples").Content[0].Value)
	assert.Equal(t, 1, nodeutil.Len(nodeutil.Get(state, "examples")))

	param := nodeutil.GetPath(doc.Paths(), "/catalogs/{id}/rpc/setup-catalog-request", "post", "parameters")
	examples := nodeutil.GetPath(param.Content[0], "schema", "examples")
	require.NotNil(t, examples)
	assert.Equal(t, "urn:catalog:1", examples.Content[0].Value)
}

func TestRun_Output(t *testing.T) {
	result, cfg := runFixtures(t)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "openapi: 3.1.0\ninfo:\n"), text[:40])
	assert.NotContains(t, text, "&")
	assert.NotContains(t, text, "nullable")

	reloaded, err := parser.ParseFile(cfg.Output)
	require.NoError(t, err)
	assert.True(t, nodeutil.Equal(result.Document.Node(), reloaded.Document.Node()))
	assert.Equal(t, result.Stats, reloaded.Stats)
	assert.Positive(t, result.TotalTime)
	assert.LessOrEqual(t, result.LoadTime, result.TotalTime)
}

func TestRun_Deterministic(t *testing.T) {
	_, first := runFixtures(t)
	_, second := runFixtures(t)

	a, err := os.ReadFile(first.Output)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Output)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_SourcesUnchanged(t *testing.T) {
	runFixtures(t)
	parsed, err := parser.ParseFile(filepath.Join("testdata", "catalog", "catalog_dsp.json"))
	require.NoError(t, err)
	assert.True(t, nodeutil.IsTrue(nodeutil.GetPath(parsed.Document.Schema("ErrorInfo"), "properties", "details", "nullable")))
}

func TestRun_EnabledFixes(t *testing.T) {
	result, _ := runFixtures(t, WithEnabledFixes(fixer.FixTypeReconciledOperationID))
	for _, fix := range result.Fixes {
		assert.Equal(t, fixer.FixTypeReconciledOperationID, fix.Type)
	}
	assert.Equal(t, 2, result.FixCount)
	assert.True(t, nodeutil.IsTrue(nodeutil.GetPath(result.Document.Schema("Catalog"), "properties", "title", "nullable")))
}

func TestConsolidate_LoadFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config, string)
		input  string
	}{
		{"missing gateway", func(c *Config, dir string) { c.Gateway = filepath.Join(dir, "missing.yaml") }, "gateway"},
		{"missing transfer protocol", func(c *Config, dir string) { c.TransferProtocol = filepath.Join(dir, "missing.yaml") }, "transfer-protocol"},
		{"malformed catalog agent", func(c *Config, dir string) {
			path := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(`{"components": `), 0o600))
			c.CatalogAgent = path
		}, "catalog-agent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg, t.TempDir())
			c, err := New(cfg, WithLogger(quietLogger()))
			require.NoError(t, err)

			_, err = c.Run()
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
			assert.Contains(t, err.Error(), tt.input)

			_, statErr := os.Stat(cfg.Output)
			assert.ErrorIs(t, statErr, os.ErrNotExist, "no partial output")
		})
	}
}

func TestWriteResult_OutputFault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = filepath.Join(t.TempDir(), "no-such-dir", DefaultOutputName)
	c, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	result, err := c.Consolidate()
	require.NoError(t, err)
	err = c.WriteResult(result)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrOutput)

	assert.Error(t, c.WriteResult(nil))
}

func TestConsolidate_LogsOperationIDUpdates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := New(testConfig(t), WithLogger(logger))
	require.NoError(t, err)
	_, err = c.Consolidate()
	require.NoError(t, err)

	var updates []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "updated operation id" {
			updates = append(updates, rec)
		}
	}
	require.Len(t, updates, 2)
	assert.Equal(t, "gatewaySetupCatalogRequest", updates[0]["from"])
	assert.Equal(t, "setupCatalogRequest", updates[0]["to"])
	assert.Contains(t, buf.String(), `"msg":"schema overwritten"`)
}

func TestConsolidateDocuments(t *testing.T) {
	gateway := parser.NewDocument(nodeutil.MustParse(`
paths:
  /a:
    get: {}
components:
  schemas:
    Foo: {type: string, nullable: true}
`))
	catalog := parser.NewDocument(nodeutil.MustParse("components:\n  schemas:\n    Foo: {type: integer}\n"))
	before := nodeutil.DeepCopy(gateway.Node())

	result, err := ConsolidateDocuments(Inputs{
		Gateway:         gateway,
		CatalogProtocol: catalog,
		Names:           map[joiner.Key]string{{Subsystem: joiner.SubsystemCatalog, Role: joiner.RoleProtocol}: "dsp"},
	}, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.True(t, nodeutil.Equal(before, gateway.Node()), "gateway untouched")
	assert.Equal(t, "integer", nodeutil.Get(result.Document.Schema("Foo"), "type").Value)
	require.Len(t, result.Merge.Collisions, 1)
	assert.Equal(t, "dsp", result.Merge.Collisions[0].Winner)
	assert.Equal(t, joiner.OwnerFallback, result.Merge.ErrorInfoSource)
	assert.Equal(t, 5, nodeutil.Len(nodeutil.GetPath(result.Document.Paths(), "/a", "get", "responses")))
	assert.Zero(t, result.LoadTime)
}

func TestConsolidateDocuments_DefaultNames(t *testing.T) {
	result, err := ConsolidateDocuments(Inputs{
		Gateway:       parser.NewDocument(nodeutil.MustParse("components:\n  schemas:\n    A: {}\n")),
		TransferAgent: parser.NewDocument(nodeutil.MustParse("components:\n  schemas:\n    A: {}\n")),
	}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, result.Merge.Collisions, 1)
	assert.Equal(t, "transfer-agent", result.Merge.Collisions[0].Winner)
	assert.True(t, result.Merge.Collisions[0].Identical)
}

func TestConsolidateDocuments_Errors(t *testing.T) {
	_, err := ConsolidateDocuments(Inputs{})
	assert.ErrorContains(t, err, "gateway document is required")

	_, err = ConsolidateDocuments(Inputs{Gateway: parser.NewDocument(nil)}, WithLogger(nil))
	assert.ErrorContains(t, err, "logger cannot be nil")

	_, err = ConsolidateDocuments(Inputs{Gateway: parser.NewDocument(nil)}, WithEnabledFixes("nope"))
	assert.ErrorContains(t, err, "unknown fix type")
}
