package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// SQL reads every row of one table; column names become the header row.
type SQL struct {
	DB    *sql.DB
	Table string
}

func (s *SQL) Name() string { return "sql:" + s.Table }

func (s *SQL) Rows(ctx context.Context) ([][]any, error) {
	if s.DB == nil || s.Table == "" {
		return nil, ErrNotConfigured
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT * FROM "+pq.QuoteIdentifier(s.Table))
	if err != nil {
		return nil, fmt.Errorf("sql %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	grid := [][]any{header}

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sql %s: %w", s.Table, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		grid = append(grid, vals)
	}
	return grid, rows.Err()
}
