// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
)

// columnAliases maps accepted column names to record fields. The first
// alias found in the file wins.
var columnAliases = map[string][]string{
	"title":            {"title", "name"},
	"genres":           {"genres", "genre"},
	"synopsis":         {"synopsis", "description", "overview"},
	"original_network": {"original_network", "network"},
	"rating":           {"rating", "score"},
	"content_rating":   {"content_rating", "age_rating"},
}

// DuckDBSource reads records from a CSV, Parquet or JSON file through an
// in-memory DuckDB instance.
type DuckDBSource struct {
	path   string
	format string
}

// NewDuckDBSource creates a DuckDBSource. An empty format is inferred from
// the file extension.
func NewDuckDBSource(path, format string) (*DuckDBSource, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = detectFormat(path)
	}
	switch format {
	case "csv", "parquet", "json":
	default:
		return nil, fmt.Errorf("unsupported duckdb format %q", format)
	}
	return &DuckDBSource{path: path, format: format}, nil
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return "duckdb:" + s.format + ":" + s.path
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) ([]DramaRecord, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	relation := s.relation()
	columns, err := describe(ctx, db, relation)
	if err != nil {
		return nil, err
	}

	query, err := buildSelect(relation, columns)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var records []DramaRecord
	for rows.Next() {
		var title, genres, synopsis, network, rating, contentRating sql.NullString
		if err := rows.Scan(&title, &genres, &synopsis, &network, &rating, &contentRating); err != nil {
			return nil, fmt.Errorf("scan catalog row %d: %w", len(records), err)
		}
		rec := DramaRecord{
			Title:    title.String,
			Genres:   SplitGenres(genres.String),
			Synopsis: synopsis.String,
			Network:  network.String,
		}
		if rating.Valid {
			r, err := ParseRating(rating.String)
			if err != nil {
				return nil, fmt.Errorf("catalog row %d: %w", len(records), err)
			}
			rec.Rating = r
		}
		if contentRating.Valid {
			v := contentRating.String
			rec.ContentRating = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return records, nil
}

func (s *DuckDBSource) relation() string {
	lit := quoteLiteral(s.path)
	switch s.format {
	case "parquet":
		return "read_parquet(" + lit + ")"
	case "json":
		return "read_json_auto(" + lit + ")"
	default:
		return "read_csv_auto(" + lit + ", header = true)"
	}
}

// describe returns column name -> DuckDB type for the relation.
func describe(ctx context.Context, db *sql.DB, relation string) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE SELECT * FROM "+relation)
	if err != nil {
		return nil, fmt.Errorf("describe catalog: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describe columns: %w", err)
	}

	out := make(map[string]string)
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan describe row: %w", err)
		}
		// column_name, column_type lead every DESCRIBE row.
		out[strings.ToLower(vals[0].String)] = strings.ToUpper(vals[1].String)
	}
	return out, rows.Err()
}

// buildSelect projects the relation onto the six record fields as VARCHAR,
// substituting NULL for absent columns.
func buildSelect(relation string, columns map[string]string) (string, error) {
	fields := []string{"title", "genres", "synopsis", "original_network", "rating", "content_rating"}
	exprs := make([]string, 0, len(fields))
	for _, field := range fields {
		col, typ, ok := findColumn(columns, columnAliases[field])
		if !ok {
			if field == "title" {
				return "", fmt.Errorf("catalog file has no title column")
			}
			exprs = append(exprs, "NULL")
			continue
		}
		ident := quoteIdent(col)
		if field == "genres" && strings.HasSuffix(typ, "[]") {
			exprs = append(exprs, "array_to_string("+ident+", ',')")
			continue
		}
		exprs = append(exprs, "CAST("+ident+" AS VARCHAR)")
	}
	return "SELECT " + strings.Join(exprs, ", ") + " FROM " + relation, nil
}

func findColumn(columns map[string]string, aliases []string) (name, typ string, ok bool) {
	for _, a := range aliases {
		if t, found := columns[a]; found {
			return a, t, true
		}
	}
	return "", "", false
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
