package database

import (
	"context"
	"fmt"
)

// Options selects and configures a UserStore backend.
type Options struct {
	// Driver is one of memory, sqlite, postgres, mysql or mongo.
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
	Collection    string
}

// Open returns the backend named by opts.Driver, ready for use.
func Open(ctx context.Context, opts Options) (UserStore, error) {
	switch opts.Driver {
	case "memory":
		return NewMemoryUserStore(), nil
	case "mongo":
		return NewMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.Collection)
	}

	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, fmt.Errorf("database: unknown store %q", opts.Driver)
	}
	return NewSQL(ctx, dialect, opts.DSN)
}
