package store

import (
	"context"
	"database/sql"
	"time"
)

// ZoneRecord is one exported zone row. Geometry holds the GeoJSON
// geometry object as serialized into the output files.
type ZoneRecord struct {
	ID        int
	ZBEID     string
	Name      string
	City      string
	Geometry  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Upsert inserts the record or refreshes name, geometry, and updated_at
// when the (zbe_id, city) pair already exists.
func (z *ZoneRecord) Upsert(ctx context.Context, db QueryRower) error {
	query := `
		INSERT INTO zbe_zones(zbe_id, name, city, geometry, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (zbe_id, city) DO UPDATE
		SET name = EXCLUDED.name,
		    geometry = EXCLUDED.geometry,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`

	now := time.Now().UTC()
	z.CreatedAt = now
	z.UpdatedAt = now

	return db.QueryRowContext(ctx, query,
		z.ZBEID,
		z.Name,
		z.City,
		z.Geometry,
		z.CreatedAt,
		z.UpdatedAt,
	).Scan(&z.ID)
}
