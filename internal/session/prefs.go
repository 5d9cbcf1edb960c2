// README: Traveler preferences store backed by Postgres.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PrefsStore handles user_preferences persistence.
//
// Expected schema:
//
//	CREATE TABLE user_preferences (
//	    uid                    TEXT PRIMARY KEY,
//	    home_city              TEXT NOT NULL DEFAULT '',
//	    budget                 TEXT NOT NULL DEFAULT '',
//	    travel_style           TEXT NOT NULL DEFAULT '',
//	    interests              TEXT[] NOT NULL DEFAULT '{}',
//	    preferred_destinations TEXT[] NOT NULL DEFAULT '{}'
//	);
type PrefsStore struct {
	db *pgxpool.Pool
}

// NewPrefsStore returns a PrefsStore backed by the given connection pool.
func NewPrefsStore(db *pgxpool.Pool) *PrefsStore {
	return &PrefsStore{db: db}
}

// Get loads the preferences for uid. A missing row yields zero-value
// preferences, not an error.
func (s *PrefsStore) Get(ctx context.Context, uid string) (Preferences, error) {
	var p Preferences
	err := s.db.QueryRow(ctx, `
		SELECT home_city, budget, travel_style, interests, preferred_destinations
		FROM user_preferences WHERE uid = $1
	`, uid).Scan(&p.HomeCity, &p.Budget, &p.TravelStyle, &p.Interests, &p.PreferredDestinations)
	if errors.Is(err, pgx.ErrNoRows) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("prefs: get: %w", err)
	}
	return p, nil
}

// Merge applies the patch on top of the stored row and writes the result back.
// Read-modify-write is acceptable here: a session has a single chat widget, so
// the last write wins by design.
func (s *PrefsStore) Merge(ctx context.Context, uid string, patch Patch) error {
	current, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	merged := patch.Apply(current)
	if merged.Interests == nil {
		merged.Interests = []string{}
	}
	if merged.PreferredDestinations == nil {
		merged.PreferredDestinations = []string{}
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_preferences (uid, home_city, budget, travel_style, interests, preferred_destinations)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE SET
			home_city              = EXCLUDED.home_city,
			budget                 = EXCLUDED.budget,
			travel_style           = EXCLUDED.travel_style,
			interests              = EXCLUDED.interests,
			preferred_destinations = EXCLUDED.preferred_destinations
	`, uid, merged.HomeCity, merged.Budget, merged.TravelStyle,
		merged.Interests, merged.PreferredDestinations)
	if err != nil {
		return fmt.Errorf("prefs: merge: %w", err)
	}
	return nil
}
