package app

import (
	"context"
	"errors"

	"github.com/nokokiii/API-Engineering-Exam/internal/database"
	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

// App decides the outcome of every users operation. Body validation always
// runs before the store is consulted.
type App struct {
	Users database.UserStore
}

func New(users database.UserStore) *App {
	return &App{Users: users}
}

// CreateUser stores a new user under a store-assigned id.
func (a *App) CreateUser(ctx context.Context, p models.UserPatch) (*models.User, error) {
	if !p.Complete() {
		return nil, ErrMissingCreateValues
	}
	u, err := a.Users.Create(ctx, *p.Name, *p.Lastname)
	if err != nil {
		return nil, Internal(err)
	}
	return u, nil
}

func (a *App) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := a.Users.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, Internal(err)
	}
	return u, nil
}

func (a *App) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ReplaceUser fully overwrites id, creating it when absent. created reports
// which of the two happened.
func (a *App) ReplaceUser(ctx context.Context, id int64, p models.UserPatch) (created bool, err error) {
	if !p.Complete() {
		return false, ErrMissingCreateValues
	}
	u := p.User(id)
	created, err = a.Users.Upsert(ctx, &u)
	if err != nil {
		return false, Internal(err)
	}
	return created, nil
}

// PatchUser merges the present fields into an existing user.
func (a *App) PatchUser(ctx context.Context, id int64, p models.UserPatch) error {
	if p.Empty() {
		return ErrMissingUpdateValues
	}
	err := a.Users.Update(ctx, id, p)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

// DeleteUser removes id. Removing an absent user succeeds.
func (a *App) DeleteUser(ctx context.Context, id int64) error {
	if err := a.Users.Delete(ctx, id); err != nil {
		return Internal(err)
	}
	return nil
}
