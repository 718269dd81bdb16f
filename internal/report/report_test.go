// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

func sampleResults() types.ResultSet {
	return types.ResultSet{
		{
			PMID:                "38000001",
			Title:               `Dosing "psilocybin", a review`,
			PublicationDate:     "2024-Mar-07",
			CompanyAuthors:      []string{"Ann Able", "Cy Cole"},
			CompanyAffiliations: []string{"Acme Therapeutics Inc, Boston, MA", "Compass Pathways, London"},
			ContactEmail:        "ann@acme.com",
		},
		{
			PMID:                "38000002",
			Title:               "Line\nbreaks in titles",
			PublicationDate:     types.UnknownDate,
			CompanyAuthors:      []string{"Bob Baker"},
			CompanyAffiliations: []string{"Pfizer Inc."},
			ContactEmail:        types.NoContactEmail,
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rs := sampleResults()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rs))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, len(rs))
	for i, r := range rs {
		assert.Equal(t, ToRow(r), rows[i])
	}
	assert.Equal(t, "Ann Able; Cy Cole", rows[0].NonAcademicAuthors)
	assert.Equal(t, "Acme Therapeutics Inc, Boston, MA; Compass Pathways, London", rows[0].CompanyAffiliations)
}

func TestCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email\n", buf.String())

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "A,B,C,D,E,F\n"},
		{"short row", strings.Join(Columns, ",") + "\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleResults()))
	out := buf.String()

	assert.Contains(t, out, "Paper 1 of 2")
	assert.Contains(t, out, "PubmedID:")
	assert.Contains(t, out, "38000001")
	assert.Contains(t, out, "Non-academic Author(s):")
	assert.Contains(t, out, "Ann Able; Cy Cole")
	assert.Contains(t, out, "2 papers")

	// Labels appear in field order.
	prev := -1
	for _, c := range Columns {
		idx := strings.Index(out, c+":")
		require.GreaterOrEqual(t, idx, 0, c)
		assert.Greater(t, idx, prev, c)
		prev = idx
	}
}

func TestWriteConsoleEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, nil))
	assert.Contains(t, buf.String(), "No papers")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, ToRows(sampleResults()), rows)
	assert.Contains(t, buf.String(), `"pubmed_id": "38000001"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResults()))

	var rows []Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, ToRows(sampleResults()), rows)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "papers.db")
	require.NoError(t, WriteSQLite(path, sampleResults()))

	rows, err := ReadSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, ToRows(sampleResults()), rows)

	// A second run replaces the artifact rather than appending to it.
	require.NoError(t, WriteSQLite(path, sampleResults()[:1]))
	rows, err = ReadSQLite(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReadSQLiteMissingFile(t *testing.T) {
	_, err := ReadSQLite(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path     string
		explicit types.OutputFormat
		want     types.OutputFormat
		wantErr  bool
	}{
		{"", "", types.FormatConsole, false},
		{"results.csv", "", types.FormatCSV, false},
		{"results", "", types.FormatCSV, false},
		{"results.JSON", "", types.FormatJSON, false},
		{"results.yml", "", types.FormatYAML, false},
		{"results.db", "", types.FormatSQLite, false},
		{"results.csv", types.FormatJSON, types.FormatJSON, false},
		{"", "xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.explicit), func(t *testing.T) {
			got, err := Format(tt.path, tt.explicit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	var stdout bytes.Buffer

	require.NoError(t, Render(types.OutputConfig{File: path}, sampleResults(), &stdout))
	assert.Empty(t, stdout.String())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRenderToStdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, Render(types.OutputConfig{}, sampleResults(), &stdout))
	assert.Contains(t, stdout.String(), "Paper 2 of 2")
}

func TestRenderSQLiteNeedsFile(t *testing.T) {
	err := Render(types.OutputConfig{Format: types.FormatSQLite}, sampleResults(), &bytes.Buffer{})
	assert.Error(t, err)
}
