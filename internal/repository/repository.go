package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/shopspring/decimal"
)

// ErrMissingColumn is returned when the source table lacks a required column
var ErrMissingColumn = errors.New("required column missing")

// Source table columns
const (
	colReferenceDate = "data_base"
	colState         = "uf"
	colClient        = "cliente"
	colSize          = "porte"
	colOccupation    = "ocupacao"
	colSector        = "cnae_secao"
	colModality      = "modalidade"
	colActive        = "soma_carteira_ativa"
	colDelinquent    = "soma_carteira_inadimplida_arrastada"
	colProblematic   = "soma_ativo_problematico"
	colDueWithin90   = "soma_a_vencer_ate_90_dias"
	colOperations    = "soma_numero_de_operacoes"
)

var requiredColumns = []string{
	colReferenceDate, colState, colClient, colSize, colOccupation, colSector, colModality,
	colActive, colDelinquent, colProblematic, colDueWithin90, colOperations,
}

// notInformed replaces empty grouping labels
const notInformed = "Não informado"

// Repository provides database operations
type Repository struct {
	db            *sql.DB
	table         string
	readOnlyQuery bool
}

// NewRepository initializes a new repository over the consolidated table.
// Generated queries run in read-only transactions on drivers that support them.
func NewRepository(db *sql.DB, driver, table string) *Repository {
	return &Repository{db: db, table: table, readOnlyQuery: driver == "postgres"}
}

// Table returns the name of the consolidated table
func (r *Repository) Table() string {
	return r.table
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// LoadRecords reads every row of the consolidated table
func (r *Repository) LoadRecords(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", r.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[strings.ToLower(c)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, r.table, c)
		}
	}

	var records []models.Record
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record, err := toRecord(values, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}

func toRecord(values []any, index map[string]int) (models.Record, error) {
	text := func(col string) string { return toText(values[index[col]]) }
	label := func(col string) string {
		if v := strings.TrimSpace(text(col)); v != "" {
			return v
		}
		return notInformed
	}

	var amounts [4]decimal.Decimal
	for i, col := range []string{colActive, colDelinquent, colProblematic, colDueWithin90} {
		d, err := toDecimal(values[index[col]])
		if err != nil {
			return models.Record{}, fmt.Errorf("invalid %s: %w", col, err)
		}
		amounts[i] = d
	}
	ops, err := toDecimal(values[index[colOperations]])
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid %s: %w", colOperations, err)
	}

	return models.Record{
		ReferenceDate: text(colReferenceDate),
		State:         strings.TrimSpace(text(colState)),
		Client:        text(colClient),
		Size:          label(colSize),
		Occupation:    label(colOccupation),
		Sector:        label(colSector),
		Modality:      label(colModality),
		Active:        amounts[0],
		Delinquent:    amounts[1],
		Problematic:   amounts[2],
		DueWithin90:   amounts[3],
		Operations:    ops.IntPart(),
	}, nil
}

// toText stringifies a driver value. Dates come out as DD/MM/YYYY.
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("02/01/2006")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return parseDecimal(t)
	case []byte:
		return parseDecimal(string(t))
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type %T", v)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// QueryResult holds the rows of an ad-hoc query
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// maxRenderedRows bounds the table embedded into prompts
const maxRenderedRows = 50

// String renders the result as a markdown table
func (q *QueryResult) String() string {
	if len(q.Rows) == 0 {
		return "A consulta não retornou linhas."
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(q.Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(q.Columns)) + "\n")
	for i, row := range q.Rows {
		if i == maxRenderedRows {
			fmt.Fprintf(&b, "\n(%d linhas omitidas)\n", len(q.Rows)-maxRenderedRows)
			break
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

// RunQuery executes a generated query and collects its rows as text
func (r *Repository) RunQuery(ctx context.Context, query string) (*QueryResult, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: r.readOnlyQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &QueryResult{Columns: columns}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = toText(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return result, nil
}
