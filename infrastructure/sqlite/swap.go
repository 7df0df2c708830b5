package sqlite

import (
	"context"
	"fmt"
	"os"
	"sync"
)

var swapMu sync.Mutex

// ReplaceFromFile swaps the database file with the one at srcPath and
// reopens both handles. Used by the settings backup-restore flow.
//
// The write handle is single-connection, so closing it flushes any
// in-flight writer before the rename.
func (db *DB) ReplaceFromFile(ctx context.Context, srcPath string) error {
	if db == nil || db.Path == "" {
		return fmt.Errorf("db is not initialized")
	}

	swapMu.Lock()
	defer swapMu.Unlock()

	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("stat import file: %w", err)
	}

	if db.W != nil {
		db.W.Close()
	}
	if db.R != nil {
		db.R.Close()
	}

	if err := os.Rename(srcPath, db.Path); err != nil {
		// Try to come back up on the old file regardless.
		if reopenErr := db.reopen(); reopenErr != nil {
			return fmt.Errorf("replace db file: %w (reopen also failed: %v)", err, reopenErr)
		}
		return fmt.Errorf("replace db file: %w", err)
	}

	if err := db.reopen(); err != nil {
		return fmt.Errorf("reopen db after import: %w", err)
	}
	return nil
}

func (db *DB) reopen() error {
	fresh, err := OpenDB(db.Path)
	if err != nil {
		return err
	}
	db.WriteSQL = fresh.WriteSQL
	db.ReadSQL = fresh.ReadSQL
	db.W = fresh.W
	db.R = fresh.R
	return nil
}
