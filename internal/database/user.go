package database

import (
	"context"
	"errors"

	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

// createAttempts bounds retries when two creates race for the same next id.
const createAttempts = 5

// ErrNotFound is returned when no user is stored under the requested id.
var ErrNotFound = errors.New("database: user not found")

// UserStore is a collection of users keyed by integer id.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// List returns every user ordered by id. The slice is never nil.
	List(ctx context.Context) ([]models.User, error)
	// Create stores a new user under the next free id (max id + 1).
	Create(ctx context.Context, name, lastname string) (*models.User, error)
	// Upsert inserts u or fully replaces the user with the same id.
	Upsert(ctx context.Context, u *models.User) (created bool, err error)
	// Update sets the fields present in p. Returns ErrNotFound if id is absent.
	Update(ctx context.Context, id int64, p models.UserPatch) error
	// Delete removes id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// Clear drops every stored user.
	Clear(ctx context.Context) error
	Close() error
}
