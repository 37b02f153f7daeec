// Package store persists exported zones to Postgres so BI dashboards can
// query them without touching the generated files.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) tx(ctx context.Context, txFunc func(*sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	if err := txFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("err: %w, rbErr: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// UpsertZonesTx writes all records in a single transaction. A failure
// rolls everything back; a run either persists completely or not at all,
// matching the all-or-nothing file output.
func (s *Store) UpsertZonesTx(ctx context.Context, records []ZoneRecord) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		for i := range records {
			if err := records[i].Upsert(ctx, tx); err != nil {
				return fmt.Errorf("failed upserting zone (zbe_id=%s, city=%s): %w",
					records[i].ZBEID, records[i].City, err)
			}
		}
		return nil
	})
}
