// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS local (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;
`

// kvDB is the thin SQLite key/value layer under Local.
type kvDB struct {
	db *sql.DB
}

func openKV(path string) (*kvDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &kvDB{db: db}, nil
}

func (k *kvDB) get(key string) (string, bool, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM local WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return value, true, nil
}

func (k *kvDB) set(key, value string) error {
	_, err := k.db.Exec(
		`INSERT INTO local (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (k *kvDB) close() {
	k.db.Close()
}
