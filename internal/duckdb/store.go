// Package duckdb persists per-drug top-hit tables in a DuckDB
// database, keeping results queryable across pipeline runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/harel-coffee/MTB-CNN-auto/internal/saliency"
)

// Store manages a DuckDB connection for storing top hits.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS top_hits (
		drug VARCHAR,
		rank INTEGER,
		locus VARCHAR,
		position DOUBLE,
		score_mean DOUBLE,
		score_max DOUBLE,
		abs_score DOUBLE,
		PRIMARY KEY (drug, rank)
	)`)
	return err
}

// WriteHits replaces the stored hits for a drug with the given ranked
// set. Rank is the position in the ranked order, starting at 1.
func (s *Store) WriteHits(drug string, hits []saliency.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM top_hits WHERE drug = ?`, drug); err != nil {
		return fmt.Errorf("clear hits for %s: %w", drug, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO top_hits
		(drug, rank, locus, position, score_mean, score_max, abs_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, hit := range hits {
		_, err := stmt.Exec(drug, i+1, hit.Locus, hit.Position,
			hit.ScoreMean, hit.ScoreMax, hit.AbsScore)
		if err != nil {
			return fmt.Errorf("insert hit %d for %s: %w", i+1, drug, err)
		}
	}

	return tx.Commit()
}

// HitCount returns the number of stored hits for a drug.
func (s *Store) HitCount(drug string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM top_hits WHERE drug = ?`, drug).Scan(&count)
	return count, err
}

// Drugs returns a sorted list of drugs with stored hits.
func (s *Store) Drugs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT drug FROM top_hits ORDER BY drug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drugs []string
	for rows.Next() {
		var drug string
		if err := rows.Scan(&drug); err != nil {
			return nil, err
		}
		drugs = append(drugs, drug)
	}
	return drugs, rows.Err()
}
