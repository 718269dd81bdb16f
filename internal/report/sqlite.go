// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

var sqliteSchema = []string{
	`CREATE TABLE papers (
		position INTEGER PRIMARY KEY,
		pmid TEXT NOT NULL,
		title TEXT,
		publication_date TEXT,
		non_academic_authors TEXT,
		company_affiliations TEXT,
		contact_email TEXT
	)`,
	`CREATE TABLE company_authors (
		position INTEGER NOT NULL REFERENCES papers(position),
		name TEXT NOT NULL
	)`,
	`CREATE TABLE company_affiliations (
		position INTEGER NOT NULL REFERENCES papers(position),
		affiliation TEXT NOT NULL
	)`,
	`CREATE INDEX idx_papers_pmid ON papers(pmid)`,
}

// WriteSQLite writes rs to a fresh SQLite database at path, replacing any
// file already there. Besides the six-field papers table it keeps the
// author and affiliation sets as separate rows.
func WriteSQLite(path string, rs types.ResultSet) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := insertRecords(tx, rs); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

func insertRecords(tx *sql.Tx, rs types.ResultSet) error {
	for i, r := range rs {
		row := ToRow(r)
		if _, err := tx.Exec(
			`INSERT INTO papers (position, pmid, title, publication_date, non_academic_authors, company_affiliations, contact_email)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i+1, row.PubmedID, row.Title, row.PublicationDate, row.NonAcademicAuthors, row.CompanyAffiliations, row.ContactEmail,
		); err != nil {
			return fmt.Errorf("inserting paper %s: %w", r.PMID, err)
		}
		for _, name := range r.CompanyAuthors {
			if _, err := tx.Exec(`INSERT INTO company_authors (position, name) VALUES (?, ?)`, i+1, name); err != nil {
				return fmt.Errorf("inserting author for %s: %w", r.PMID, err)
			}
		}
		for _, aff := range r.CompanyAffiliations {
			if _, err := tx.Exec(`INSERT INTO company_affiliations (position, affiliation) VALUES (?, ?)`, i+1, aff); err != nil {
				return fmt.Errorf("inserting affiliation for %s: %w", r.PMID, err)
			}
		}
	}
	return nil
}

// ReadSQLite returns the papers table of a database written by WriteSQLite,
// in result order.
func ReadSQLite(path string) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT pmid, title, publication_date, non_academic_authors, company_affiliations, contact_email
		FROM papers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.PubmedID, &r.Title, &r.PublicationDate, &r.NonAcademicAuthors, &r.CompanyAffiliations, &r.ContactEmail); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
