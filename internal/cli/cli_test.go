package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/caselookup/internal/cli"
	"github.com/raysh454/caselookup/internal/demoserver"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/testutil"
)

// court starts the demo court and a config file pointing the case URL
// template at it.
func court(t *testing.T) (base, configPath string) {
	t.Helper()
	ds := demoserver.NewDemoServer(demoserver.DefaultConfig(), &testutil.DummyLogger{})
	ts := httptest.NewServer(ds.Handler())
	t.Cleanup(ts.Close)

	template := ts.URL + demoserver.CaseStatusPath + "?case_type={case_type}&case_number={case_number}&year={filing_year}"
	cfg, err := json.Marshal(map[string]any{
		"log_level": "error",
		"locator":   map[string]string{"case_url_template": template},
	})
	require.NoError(t, err)

	configPath = filepath.Join(t.TempDir(), "caselookup.json")
	require.NoError(t, os.WriteFile(configPath, cfg, 0o644))
	return ts.URL, configPath
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// ─── lookup ───

func TestLookup_ByCaseFields(t *testing.T) {
	t.Parallel()
	_, cfg := court(t)

	out, _, err := run(t, "--config", cfg, "lookup", "--type", "W.P.(C)", "--number", "1234", "--year", "2023")
	require.NoError(t, err)

	var rec model.CaseRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "ACME Infrastructure Pvt. Ltd.", model.StringOrEmpty(rec.Petitioner))
	assert.Len(t, rec.Orders, 3)
}

func TestLookup_ByURL(t *testing.T) {
	t.Parallel()
	base, cfg := court(t)

	out, _, err := run(t, "--config", cfg, "lookup", "--url", demoserver.CaseURL(base, "FAO", "12", "2021"))
	require.NoError(t, err)
	assert.Contains(t, out, `"petitioner": "Ramesh Kumar"`)
	assert.Contains(t, out, `"next_hearing": null`)
}

func TestLookup_UnknownCasePrintsError(t *testing.T) {
	t.Parallel()
	_, cfg := court(t)

	out, _, err := run(t, "--config", cfg, "lookup", "--type", "FAO", "--number", "404", "--year", "2001")
	require.Error(t, err)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "court site returned status 404", resp.Error)
}

func TestLookup_InvalidInput(t *testing.T) {
	t.Parallel()
	_, cfg := court(t)

	cases := map[string][]string{
		"no flags":    {"lookup"},
		"bad url":     {"lookup", "--url", "ftp://court.example/x"},
		"zero number": {"lookup", "--type", "FAO", "--number", "0", "--year", "2020"},
		"bad year":    {"lookup", "--type", "FAO", "--number", "1", "--year", "1800"},
		"extra args":  {"lookup", "surprise"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := run(t, append([]string{"--config", cfg}, args...)...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

// ─── batch ───

func TestBatch_WritesOutputFiles(t *testing.T) {
	t.Parallel()
	_, cfg := court(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "cases.txt")
	require.NoError(t, os.WriteFile(input, []byte(strings.Join([]string{
		"# demo court",
		"W.P.(C),1234,2023",
		"FAO,12,2021",
		"FAO,0,2021",
		"",
		"CRL.A.,999,2019",
	}, "\n")), 0o644))

	out, _, err := run(t, "--config", cfg, "batch", input, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 4 cases fetched")

	raw, err := os.ReadFile(filepath.Join(dir, "output.json"))
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "success", rows[0]["status"])
	assert.Equal(t, "invalid_format", rows[2]["status"])
	assert.Equal(t, "error: court site returned status 404", rows[3]["status"])

	csv, err := os.ReadFile(filepath.Join(dir, "output.csv"))
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(csv), "\n"))
}

func TestBatch_MissingFile(t *testing.T) {
	t.Parallel()
	_, cfg := court(t)

	_, _, err := run(t, "--config", cfg, "batch", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// ─── config ───

func TestRoot_BadConfigFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "caselookup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fetcher": {"max_concurrency": -1}}`), 0o644))

	_, _, err := run(t, "--config", path, "lookup", "--url", "https://court.example/x")
	assert.Error(t, err)
}
