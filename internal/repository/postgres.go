package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"realestate-agent/internal/model"
)

const propertyColumns = `
	id, title, type, location, city, state, bedrooms, bathrooms,
	area_value, area_unit, price, for_sale, amenities, description,
	owner, is_available, date_added`

// Connect opens the shared PostgreSQL pool
func Connect(dsn string, maxConn, maxIdleConn int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// PostgresRepository handles property catalog operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a property repository over an open pool
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ PropertyStore = (*PostgresRepository)(nil)

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// buildWhere translates a filter into a WHERE clause and its positional args
func buildWhere(filter model.Filter) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.IsAvailable {
		whereClauses = append(whereClauses, "is_available = true")
	}
	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, string(*filter.Type))
		argIndex++
	}
	if filter.Bedrooms != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
		args = append(args, *filter.Bedrooms)
		argIndex++
	}
	if filter.Price != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, filter.Price.LTE)
		argIndex++
	}
	if filter.Location != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(location ILIKE $%d OR city ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+escapeLike(*filter.Location)+"%")
		argIndex++
	}
	if filter.ForSale != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("for_sale = $%d", argIndex))
		args = append(args, *filter.ForSale)
	}

	return strings.Join(whereClauses, " AND "), args
}

// escapeLike neutralizes LIKE wildcards in user-supplied text
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildFindQuery assembles the SELECT for Find
func buildFindQuery(filter model.Filter, opts model.FindOptions) (string, []interface{}) {
	whereClause, args := buildWhere(filter)

	orderBy := "date_added DESC"
	if opts.SortByPrice {
		orderBy = "price ASC"
	}

	query := fmt.Sprintf("SELECT %s FROM properties WHERE %s ORDER BY %s", propertyColumns, whereClause, orderBy)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}

// Find returns properties matching filter
func (r *PostgresRepository) Find(ctx context.Context, filter model.Filter, opts model.FindOptions) ([]model.Property, error) {
	query, args := buildFindQuery(filter, opts)

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// GetByID retrieves a single property, or nil when it does not exist
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// Create inserts p, assigning its ID and defaults
func (r *PostgresRepository) Create(ctx context.Context, p *model.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.State == "" {
		p.State = "Goa"
	}
	if p.AreaUnit == "" {
		p.AreaUnit = "sqft"
	}
	if p.DateAdded.IsZero() {
		p.DateAdded = time.Now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO properties (%s) VALUES (
		:id, :title, :type, :location, :city, :state, :bedrooms, :bathrooms,
		:area_value, :area_unit, :price, :for_sale, :amenities, :description,
		:owner, :is_available, :date_added)`, propertyColumns)
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// Count returns the number of stored properties
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM properties"); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return total, nil
}

// DeleteAll removes every property
func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM properties"); err != nil {
		return fmt.Errorf("failed to clear properties: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings stores description embeddings for multiple properties
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	items, errs := partitionEmbeddingItems(items)
	if len(items) == 0 {
		return success, errs
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errs
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1 WHERE id = $2`)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errs
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, pgvector.NewVector(item.Embedding), item.PropertyID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("property %s: %v", item.PropertyID, err))
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			errs = append(errs, fmt.Sprintf("property %s: not found", item.PropertyID))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errs
	}

	return success, errs
}
