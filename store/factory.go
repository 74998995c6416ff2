package store

import (
	"context"
	"fmt"

	"storefront/domain"
)

// Options selects and configures a store backend.
type Options struct {
	Kind   string // "memory", "file" or "postgres"
	Path   string // file store path
	Driver string // "postgres" (lib/pq) or "pgx"
	DSN    string
}

// NewStore constructs a domain.ProductStore by kind.
func NewStore(ctx context.Context, opts Options) (domain.ProductStore, error) {
	switch opts.Kind {
	case "memory", "mem":
		return NewInMemoryStore(), nil
	case "file":
		if opts.Path == "" {
			return nil, fmt.Errorf("file path required for file store")
		}
		fs, err := NewFileStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "postgres", "pg":
		if opts.DSN == "" {
			return nil, fmt.Errorf("dsn required for postgres store")
		}
		switch opts.Driver {
		case "", "postgres", "pgx":
		default:
			return nil, fmt.Errorf("unknown database driver: %s", opts.Driver)
		}
		ps, err := NewPostgresStore(ctx, opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unknown store kind: %s", opts.Kind)
	}
}
