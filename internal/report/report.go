// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a result set: CSV, a labeled console listing, JSON,
// YAML, or a single-file SQLite database. Every format carries the same six
// fields in the same order.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Columns is the fixed field order of the tabular output.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Row is one record flattened to the six output fields.
type Row struct {
	PubmedID            string `json:"pubmed_id" yaml:"pubmed_id"`
	Title               string `json:"title" yaml:"title"`
	PublicationDate     string `json:"publication_date" yaml:"publication_date"`
	NonAcademicAuthors  string `json:"non_academic_authors" yaml:"non_academic_authors"`
	CompanyAffiliations string `json:"company_affiliations" yaml:"company_affiliations"`
	ContactEmail        string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}

// ToRow flattens r, joining the author and affiliation sets with "; ".
func ToRow(r types.PaperRecord) Row {
	return Row{
		PubmedID:            r.PMID,
		Title:               r.Title,
		PublicationDate:     r.PublicationDate,
		NonAcademicAuthors:  r.AuthorsField(),
		CompanyAffiliations: r.AffiliationsField(),
		ContactEmail:        r.ContactEmail,
	}
}

// ToRows flattens every record of rs.
func ToRows(rs types.ResultSet) []Row {
	rows := make([]Row, len(rs))
	for i, r := range rs {
		rows[i] = ToRow(r)
	}
	return rows
}

// Fields returns the row values in Columns order.
func (r Row) Fields() []string {
	return []string{r.PubmedID, r.Title, r.PublicationDate, r.NonAcademicAuthors, r.CompanyAffiliations, r.ContactEmail}
}

func rowFromFields(f []string) (Row, error) {
	if len(f) != len(Columns) {
		return Row{}, fmt.Errorf("expected %d fields, got %d", len(Columns), len(f))
	}
	return Row{
		PubmedID:            f[0],
		Title:               f[1],
		PublicationDate:     f[2],
		NonAcademicAuthors:  f[3],
		CompanyAffiliations: f[4],
		ContactEmail:        f[5],
	}, nil
}

// Format resolves the output format: an explicit choice wins, then the
// file extension, then console output when there is no file.
func Format(path string, explicit types.OutputFormat) (types.OutputFormat, error) {
	if explicit != "" {
		switch explicit {
		case types.FormatConsole, types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatSQLite:
			return explicit, nil
		}
		return "", fmt.Errorf("unsupported format %q: use console, csv, json, yaml or sqlite", explicit)
	}
	if path == "" {
		return types.FormatConsole, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return types.FormatJSON, nil
	case ".yaml", ".yml":
		return types.FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return types.FormatSQLite, nil
	default:
		return types.FormatCSV, nil
	}
}

// Render writes rs according to cfg. Without a file, output goes to stdout.
func Render(cfg types.OutputConfig, rs types.ResultSet, stdout io.Writer) error {
	format, err := Format(cfg.File, cfg.Format)
	if err != nil {
		return err
	}

	if format == types.FormatSQLite {
		if cfg.File == "" {
			return fmt.Errorf("sqlite output needs a file path")
		}
		return WriteSQLite(cfg.File, rs)
	}

	if cfg.File == "" {
		return write(format, stdout, rs)
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(cfg.File)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := write(format, f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func write(format types.OutputFormat, w io.Writer, rs types.ResultSet) error {
	switch format {
	case types.FormatCSV:
		return WriteCSV(w, rs)
	case types.FormatJSON:
		return WriteJSON(w, rs)
	case types.FormatYAML:
		return WriteYAML(w, rs)
	default:
		return WriteConsole(w, rs)
	}
}
