package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"storefront/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

const productColumns = `id, name, price, quantity, description, details`

// PostgresStore is a domain.ProductStore backed by a products table.
// Both the "postgres" (lib/pq) and "pgx" drivers are registered.
type PostgresStore struct {
	DB *sql.DB
}

// compile-time assertion
var _ domain.ProductStore = (*PostgresStore)(nil)

// NewPostgresStore opens dsn with the given driver, checks the connection and
// creates the products table if needed.
func NewPostgresStore(ctx context.Context, driver, dsn string) (*PostgresStore, error) {
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	s := &PostgresStore{DB: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the embedded schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var desc, details sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &desc, &details); err != nil {
		return domain.Product{}, err
	}
	p.Description = desc.String
	p.Details = details.String
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const insertProductSQL = `INSERT INTO products (name, price, quantity, description, details) VALUES ($1, $2, $3, $4, $5) RETURNING id`

func (s *PostgresStore) Insert(ctx context.Context, product domain.Product) (int64, error) {
	if err := domain.CheckProduct(product); err != nil {
		return 0, err
	}
	var id int64
	err := s.DB.QueryRowContext(ctx, insertProductSQL,
		product.Name, product.Price, product.Quantity,
		nullString(product.Description), nullString(product.Details),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (domain.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

var sortColumns = map[string]string{
	"name":     "name",
	"price":    "price",
	"quantity": "quantity",
}

// listQuery builds the SELECT for filter. Sort columns come from a fixed set.
func listQuery(filter domain.ListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	if col, ok := sortColumns[filter.SortBy]; ok {
		dir := "ASC"
		if filter.Order == "desc" {
			dir = "DESC"
		}
		q += ` ORDER BY ` + col + ` ` + dir + `, id`
	} else {
		q += ` ORDER BY id`
	}
	return q, args
}

func (s *PostgresStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	q, args := listQuery(filter)
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BulkImport inserts all products in one transaction.
func (s *PostgresStore) BulkImport(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	for i, p := range products {
		if err := domain.CheckProduct(p); err != nil {
			return nil, fmt.Errorf("row=%d: %w", i, err)
		}
	}
	if len(products) == 0 {
		return []domain.Product{}, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// no-op after Commit
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertProductSQL)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	out := make([]domain.Product, 0, len(products))
	for i, p := range products {
		err := stmt.QueryRowContext(ctx,
			p.Name, p.Price, p.Quantity,
			nullString(p.Description), nullString(p.Details),
		).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("row=%d: insert product: %w", i, err)
		}
		out = append(out, p)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
