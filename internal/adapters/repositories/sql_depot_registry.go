package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

// Postgres-backed implementation of the DepotRegistry port.
// Credentials are accepted for interface compatibility; access control is the
// database's concern.
type SQLDepotRegistry struct{ DB *sql.DB }

func NewSQLDepotRegistry(db *sql.DB) *SQLDepotRegistry {
	return &SQLDepotRegistry{DB: db}
}

func (s *SQLDepotRegistry) GetDepots(
	ctx context.Context,
	_ ports.Credentials,
	ids []int64,
) (_ map[int64]domain.DepotInfo, err error) {
	defer obs.Time(ctx, "depots.sql.GetDepots")(&err)

	if s.DB == nil {
		return nil, errors.New("sql depot registry: DB is nil")
	}

	if len(ids) == 0 {
		return map[int64]domain.DepotInfo{}, nil
	}

	query := `
	SELECT depot_id, name, lat, lon
	FROM depots
	WHERE depot_id = ANY($1::bigint[]);
	`
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get depots: query depots table: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]domain.DepotInfo, len(ids))
	for rows.Next() {
		var d domain.DepotInfo
		if err := rows.Scan(&d.ID, &d.Name, &d.Lat, &d.Lon); err != nil {
			return nil, fmt.Errorf("get depots: scan row: %w", err)
		}
		out[d.ID] = d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get depots: row iteration: %w", err)
	}

	return out, nil
}

// Return all depots stored in the database.
func (s *SQLDepotRegistry) ListDepots(ctx context.Context, _ ports.Credentials) (_ []domain.DepotInfo, err error) {
	defer obs.Time(ctx, "depots.sql.ListDepots")(&err)

	if s.DB == nil {
		return nil, errors.New("sql depot registry: DB is nil")
	}

	query := `
	SELECT depot_id, name, lat, lon
	FROM depots
	ORDER BY depot_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list depots: query depots table: %w", err)
	}
	defer rows.Close()

	depots := make([]domain.DepotInfo, 0, 64)
	for rows.Next() {
		var d domain.DepotInfo
		if err := rows.Scan(&d.ID, &d.Name, &d.Lat, &d.Lon); err != nil {
			return nil, fmt.Errorf("list depots: scan row: %w", err)
		}
		depots = append(depots, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list depots: row iteration: %w", err)
	}

	return depots, nil
}
