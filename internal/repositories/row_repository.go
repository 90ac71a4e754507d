package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pricing-backend/internal/registry"
)

// ErrRowNotFound is returned when an update targets a primary key that does
// not exist in the table.
var ErrRowNotFound = errors.New("row not found")

// Row is one pricing table row as an open key/value map. Values carry the
// wire-level representation produced by selectExpr: decimals, dates and json
// come back as text and are shaped by the service layer.
type Row = map[string]any

// RowRepository executes generic row CRUD against any registered pricing
// table. All identifiers come from the registry, never from the request, and
// are still quoted defensively; every value travels as a bound parameter.
type RowRepository struct {
	pool *pgxpool.Pool
}

func NewRowRepository(pool *pgxpool.Pool) *RowRepository {
	return &RowRepository{pool: pool}
}

// List returns every row of the table ordered by primary key. Inactive rows
// are filtered out unless includeInactive is set; tables without an active
// filter ignore the flag.
func (r *RowRepository) List(ctx context.Context, tc *registry.TableConfig, includeInactive bool) ([]Row, error) {
	names := columnNames(tc)
	exprs := make([]string, 0, len(names))
	for _, n := range names {
		exprs = append(exprs, selectExpr(tc, n))
	}

	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(exprs, ", "),
		pgx.Identifier{tc.TableKey}.Sanitize(),
	)
	if tc.HasActiveFilter && !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	query += fmt.Sprintf(" ORDER BY %s", pgx.Identifier{tc.PK()}.Sanitize())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", tc.TableKey, err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tc.TableKey, err)
		}

		row := make(Row, len(names))
		for i, n := range names {
			switch v := values[i].(type) {
			case []byte:
				row[n] = string(v)
			default:
				row[n] = v
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", tc.TableKey, err)
	}

	return result, nil
}

// Insert creates a row from pre-coerced column values and returns the
// server-assigned primary key.
func (r *RowRepository) Insert(ctx context.Context, tc *registry.TableConfig, values map[string]any) (int64, error) {
	cols := make([]string, 0, len(values))
	placeholders := make([]string, 0, len(values))
	args := make([]any, 0, len(values))

	// Iterate registry order so the generated SQL is deterministic.
	for _, col := range tc.Columns {
		v, ok := values[col.Key]
		if !ok {
			continue
		}
		cols = append(cols, pgx.Identifier{col.Key}.Sanitize())
		args = append(args, v)
		placeholders = append(placeholders, castPlaceholder(len(args), col.Type))
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("insert %s: no values", tc.TableKey)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pgx.Identifier{tc.TableKey}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		pgx.Identifier{tc.PK()}.Sanitize(),
	)

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", tc.TableKey, err)
	}
	return id, nil
}

// Update applies a partial update by primary key.
func (r *RowRepository) Update(ctx context.Context, tc *registry.TableConfig, id int64, values map[string]any) error {
	sets := make([]string, 0, len(values))
	args := make([]any, 0, len(values)+1)

	for _, col := range tc.Columns {
		v, ok := values[col.Key]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = %s",
			pgx.Identifier{col.Key}.Sanitize(),
			castPlaceholder(len(args), col.Type),
		))
	}
	if len(sets) == 0 {
		return fmt.Errorf("update %s: no values", tc.TableKey)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		pgx.Identifier{tc.TableKey}.Sanitize(),
		strings.Join(sets, ", "),
		pgx.Identifier{tc.PK()}.Sanitize(),
		len(args),
	)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", tc.TableKey, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

// Deactivate soft-deletes a row. Deactivating an already-inactive row is a
// no-op, not an error.
func (r *RowRepository) Deactivate(ctx context.Context, tc *registry.TableConfig, id int64) error {
	return r.setActive(ctx, tc, id, false)
}

// Restore reverses a soft delete.
func (r *RowRepository) Restore(ctx context.Context, tc *registry.TableConfig, id int64) error {
	return r.setActive(ctx, tc, id, true)
}

func (r *RowRepository) setActive(ctx context.Context, tc *registry.TableConfig, id int64, active bool) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = $1 WHERE %s = $2",
		pgx.Identifier{tc.TableKey}.Sanitize(),
		pgx.Identifier{tc.PK()}.Sanitize(),
	)
	tag, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("set active %s: %w", tc.TableKey, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

// columnNames is the full select list: primary key, registry columns, and the
// soft-delete flag when the table carries one.
func columnNames(tc *registry.TableConfig) []string {
	names := []string{tc.PK()}
	for _, col := range tc.Columns {
		names = append(names, col.Key)
	}
	if tc.HasActiveFilter {
		names = append(names, "is_active")
	}
	return names
}

// selectExpr renders one select-list expression. Decimals, dates and json are
// cast to text so scanning stays type-agnostic; the service layer shapes them
// per column config.
func selectExpr(tc *registry.TableConfig, name string) string {
	quoted := pgx.Identifier{name}.Sanitize()
	col, ok := tc.Column(name)
	if !ok {
		return quoted
	}
	switch col.Type {
	case registry.TypeDecimal, registry.TypeJSON:
		return fmt.Sprintf("%s::text AS %s", quoted, quoted)
	case registry.TypeDate:
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD') AS %s", quoted, quoted)
	default:
		return quoted
	}
}

// castPlaceholder renders the bind placeholder for a value, casting text-borne
// types back to their column type.
func castPlaceholder(n int, t registry.ColumnType) string {
	switch t {
	case registry.TypeDecimal:
		return fmt.Sprintf("($%d)::numeric", n)
	case registry.TypeDate:
		return fmt.Sprintf("($%d)::date", n)
	case registry.TypeJSON:
		return fmt.Sprintf("($%d)::jsonb", n)
	default:
		return fmt.Sprintf("$%d", n)
	}
}
