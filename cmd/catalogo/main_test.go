package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/catalog"
	"catalogo/internal/model"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b ,"))
	assert.Nil(t, splitIDs(""))
}

func TestSelectProducts(t *testing.T) {
	products := []model.Product{
		{ID: "WF-100", Name: "Wall Faucet", Category: "Faucets"},
		{ID: "T1", Name: "Tub", Category: "Bathtubs"},
		{ID: "L4", Name: "Lavatory Faucet", Category: "Faucets"},
	}

	got, missing := selectProducts(products, []string{"T1", "nope", "L4"}, catalog.Query{Category: "faucets"})
	assert.Equal(t, []string{"nope"}, missing)
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"T1", "L4", "WF-100"}, ids)

	got, _ = selectProducts(products, nil, catalog.Query{})
	assert.Empty(t, got)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []model.Product{{ID: "WF-100", Code: "WF-100", Name: strings.Repeat("x", 60)}})
	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "…")
}

func TestWireframeCommand(t *testing.T) {
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"wireframe", "--canvas", "a4", "--dpi", "50"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "<svg")

	cmd = newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"wireframe", "--canvas", "a3"})
	assert.Error(t, cmd.Execute())
}
