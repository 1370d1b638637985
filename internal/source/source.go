package source

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("source: nenhuma origem de produtos configurada")

// Source yields a raw grid: row 0 holds the headers.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([][]any, error)
}

// Static serves a fixed grid. Used by the CLI for local files and by tests.
type Static struct {
	Label string
	Grid  [][]any
}

func (s Static) Name() string { return s.Label }

func (s Static) Rows(context.Context) ([][]any, error) { return s.Grid, nil }
