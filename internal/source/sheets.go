package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalogo/internal/normalizer"
)

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

const sheetsBaseURL = "https://sheets.googleapis.com"

// Sheets reads a range through the Google Sheets values API. Cells are read
// twice: formatted values for the grid and formulas so =IMAGE() cells keep
// their URL.
type Sheets struct {
	SpreadsheetID string
	Range         string
	APIKey        string
	BaseURL       string
	Client        *http.Client
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

func (s *Sheets) Name() string { return "sheets:" + s.SpreadsheetID }

func (s *Sheets) Rows(ctx context.Context) ([][]any, error) {
	if s.SpreadsheetID == "" {
		return nil, ErrNotConfigured
	}
	values, err := s.get(ctx, "FORMATTED_VALUE")
	if err != nil {
		return nil, err
	}
	formulas, err := s.get(ctx, "FORMULA")
	if err != nil {
		return nil, err
	}

	return mergeImageFormulas(values, formulas), nil
}

func mergeImageFormulas(values, formulas [][]any) [][]any {
	at := func(grid [][]any, r, c int) any {
		if r < len(grid) && c < len(grid[r]) {
			return grid[r][c]
		}
		return nil
	}
	merged := make([][]any, max(len(values), len(formulas)))
	for r := range merged {
		width := 0
		if r < len(values) {
			width = len(values[r])
		}
		if r < len(formulas) {
			width = max(width, len(formulas[r]))
		}
		row := make([]any, width)
		for c := range row {
			row[c] = at(values, r, c)
			if f, ok := at(formulas, r, c).(string); ok {
				if _, isImage := normalizer.ImageFormulaURL(f); isImage {
					row[c] = f
				}
			}
		}
		merged[r] = row
	}
	return merged
}

func (s *Sheets) get(ctx context.Context, render string) ([][]any, error) {
	base := s.BaseURL
	if base == "" {
		base = sheetsBaseURL
	}
	q := url.Values{}
	q.Set("valueRenderOption", render)
	if s.APIKey != "" {
		q.Set("key", s.APIKey)
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		strings.TrimRight(base, "/"), url.PathEscape(s.SpreadsheetID), url.PathEscape(s.Range), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = httpClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets status %d", resp.StatusCode)
	}

	var result valueRange
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	return result.Values, nil
}
