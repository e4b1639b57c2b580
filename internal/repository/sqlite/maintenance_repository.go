package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio-api/internal/repository"
)

// ErrNotSingleton is returned when compaction targets a table that is not a singleton table.
var ErrNotSingleton = errors.New("table is not a singleton table")

// SingletonTables are the tables where only the newest row is ever read.
var SingletonTables = []string{"about", "homepage_settings", "contact_info"}

type MaintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) CompactSingleton(ctx context.Context, table string) (int64, error) {
	if !isSingleton(table) {
		return 0, fmt.Errorf("compact %q: %w", table, ErrNotSingleton)
	}

	// table is whitelisted above, so interpolating it is safe.
	res, err := r.db.ExecContext(ctx, `
DELETE FROM `+table+`
WHERE id NOT IN (
	SELECT id FROM `+table+` ORDER BY created_at DESC, id DESC LIMIT 1
)`)
	if err != nil {
		return 0, fmt.Errorf("compact %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("compact %s rows affected: %w", table, err)
	}
	return n, nil
}

func (r *MaintenanceRepository) Tables(ctx context.Context) ([]repository.TableInfo, error) {
	names, err := r.tableNames(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]repository.TableInfo, 0, len(names))
	for _, name := range names {
		columns, err := r.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, repository.TableInfo{Name: name, Columns: columns})
	}
	return tables, nil
}

func (r *MaintenanceRepository) tableNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *MaintenanceRepository) columns(ctx context.Context, table string) ([]repository.ColumnInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, type, "notnull", pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	var columns []repository.ColumnInfo
	for rows.Next() {
		var (
			col     repository.ColumnInfo
			notNull int
			pk      int
		)
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		col.NotNull = notNull != 0
		col.PK = pk != 0
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func isSingleton(table string) bool {
	for _, t := range SingletonTables {
		if t == table {
			return true
		}
	}
	return false
}
