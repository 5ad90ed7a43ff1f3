package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Seed fills the store with demo users until it holds at least n of them.
func Seed(ctx context.Context, store UserStore, n int) error {
	users, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("database: seed count: %w", err)
	}
	log.Debug().Int("count", len(users)).Msg("users before seeding")

	for i := len(users) + 1; i <= n; i++ {
		if _, err := store.Create(ctx, fmt.Sprintf("John%d", i), "Doe"); err != nil {
			return fmt.Errorf("database: seed user %d: %w", i, err)
		}
	}
	if added := n - len(users); added > 0 {
		log.Info().Int("added", added).Msg("seeded users")
	}
	return nil
}
