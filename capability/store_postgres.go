package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists profiles in a single Postgres table, one row per
// service key. Useful when several operators or CI jobs share one capability
// cache instead of each re-probing the service.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS capability_profiles (
	service_key TEXT PRIMARY KEY,
	profile     JSONB NOT NULL,
	detected_at TIMESTAMPTZ NOT NULL
)`

// NewPostgresStore connects to Postgres and ensures the backing table exists.
//
// Example:
//
//	store, err := capability.NewPostgresStore(ctx, os.Getenv("DATABASE_URL"))
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createProfilesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create capability_profiles table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Load reads the persisted profile for a service key, if any.
func (s *PostgresStore) Load(ctx context.Context, serviceKey string) (Profile, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM capability_profiles WHERE service_key = $1`,
		serviceKey,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("failed to load capability profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("failed to parse stored capability profile: %w", err)
	}
	return p, true, nil
}

// Save upserts the profile for a service key, replacing any previous row.
func (s *PostgresStore) Save(ctx context.Context, serviceKey string, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode capability profile: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO capability_profiles (service_key, profile, detected_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (service_key)
		 DO UPDATE SET profile = EXCLUDED.profile, detected_at = EXCLUDED.detected_at`,
		serviceKey, raw, p.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save capability profile: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

var _ Store = (*PostgresStore)(nil)
