package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

const (
	sourceTable    = "search_results"
	processedTable = "processed_results"

	// DriverPQ selects github.com/lib/pq.
	DriverPQ = "postgres"
	// DriverPGX selects the pgx stdlib adapter.
	DriverPGX = "pgx"
)

//go:embed schema.sql
var schemaSQL string

var sourceColumns = []string{
	domain.ColumnLink,
	domain.ColumnTitle,
	domain.ColumnSnippet,
	domain.ColumnOGDescription,
	domain.ColumnOGImage,
	domain.ColumnProfileFirstName,
	domain.ColumnProfileLastName,
}

var processedColumns = []string{
	"id",
	domain.ColumnLink,
	domain.ColumnFirstName,
	domain.ColumnLastName,
	domain.ColumnOGImage,
	domain.ColumnOGDescription,
	domain.ColumnTitle,
	domain.ColumnEducation,
	domain.ColumnEmployer,
	domain.ColumnLocation,
	domain.ColumnRegion,
	domain.ColumnCountry,
	domain.ColumnOtherExperiences,
	domain.ColumnPrime,
	domain.ColumnTotalScore,
	domain.ColumnRawTotalScore,
	domain.ColumnScoringReason,
	domain.ColumnProcessed,
	domain.ColumnCreatedAt,
	domain.ColumnUpdatedAt,
}

// Store persists search results and processed profiles into Postgres.
type Store struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

var _ ports.RecordStore = (*Store)(nil)

// Open connects using driver ("postgres" or "pgx") and verifies the connection.
func Open(ctx context.Context, driver, dsn string, maxOpenConns int) (*Store, error) {
	if driver == "" {
		driver = DriverPQ
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewStore(db), nil
}

// NewStore wires an existing sql.DB.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close terminates the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates both tables when they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SourcePage returns raw records ordered by link.
func (s *Store) SourcePage(ctx context.Context, offset, limit int) ([]domain.SourceRecord, error) {
	query, args, err := s.psql.Select(sourceColumns...).
		From(sourceTable).
		OrderBy(domain.ColumnLink).
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build source page: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query source page: %w", err)
	}
	defer rows.Close()

	var out []domain.SourceRecord
	for rows.Next() {
		var (
			r                                      domain.SourceRecord
			title, snippet, desc, image, fn, lname sql.NullString
		)
		if err := rows.Scan(&r.Link, &title, &snippet, &desc, &image, &fn, &lname); err != nil {
			return nil, fmt.Errorf("scan source row: %w", err)
		}
		r.Title, r.Snippet, r.OGDescription = title.String, snippet.String, desc.String
		r.OGImage, r.ProfileFirstName, r.ProfileLastName = image.String, fn.String, lname.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source rows iteration: %w", err)
	}
	return out, nil
}

// UpsertSource overwrites raw records keyed by link in a single statement.
func (s *Store) UpsertSource(ctx context.Context, rows []domain.SourceRecord) error {
	rows = dedupeSource(rows)
	if len(rows) == 0 {
		return nil
	}

	insert := s.psql.Insert(sourceTable).Columns(sourceColumns...)
	for _, r := range rows {
		insert = insert.Values(r.Link, r.Title, r.Snippet, r.OGDescription, r.OGImage, r.ProfileFirstName, r.ProfileLastName)
	}
	insert = insert.Suffix(`ON CONFLICT (link) DO UPDATE SET
		title = EXCLUDED.title,
		snippet = EXCLUDED.snippet,
		og_description = EXCLUDED.og_description,
		og_image = EXCLUDED.og_image,
		profile_first_name = EXCLUDED.profile_first_name,
		profile_last_name = EXCLUDED.profile_last_name`)

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build source upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert source: %w", err)
	}
	return nil
}

// ProcessedPage returns processed records ordered by link.
func (s *Store) ProcessedPage(ctx context.Context, offset, limit int) ([]domain.ProcessedRecord, error) {
	builder := s.psql.Select(processedColumns...).
		From(processedTable).
		OrderBy(domain.ColumnLink).
		Offset(uint64(offset)).
		Limit(uint64(limit))
	return s.queryProcessed(ctx, builder)
}

// UpsertProcessed inserts or updates in place keyed by link. Only the
// source-derived columns, processed and updated_at change on conflict;
// created_at keeps its original value.
func (s *Store) UpsertProcessed(ctx context.Context, rows []domain.ProcessedRecord) error {
	rows = dedupeProcessed(rows)
	if len(rows) == 0 {
		return nil
	}

	insert := s.psql.Insert(processedTable).Columns(
		domain.ColumnLink,
		domain.ColumnFirstName,
		domain.ColumnLastName,
		domain.ColumnOGImage,
		domain.ColumnOGDescription,
		domain.ColumnTitle,
		domain.ColumnProcessed,
		domain.ColumnCreatedAt,
		domain.ColumnUpdatedAt,
	)
	for _, r := range rows {
		insert = insert.Values(r.Link, r.FirstName, r.LastName, r.OGImage, r.OGDescription, r.Title,
			r.Processed, r.CreatedAt.UTC(), r.UpdatedAt.UTC())
	}
	insert = insert.Suffix(`ON CONFLICT (link) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		og_image = EXCLUDED.og_image,
		og_description = EXCLUDED.og_description,
		title = EXCLUDED.title,
		processed = EXCLUDED.processed,
		updated_at = EXCLUDED.updated_at`)

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build processed upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert processed: %w", err)
	}
	return nil
}

// FindProcessed returns records matching q ordered by link.
func (s *Store) FindProcessed(ctx context.Context, q domain.Query) ([]domain.ProcessedRecord, error) {
	where, err := buildWhere(q)
	if err != nil {
		return nil, err
	}

	builder := s.psql.Select(processedColumns...).
		From(processedTable).
		Where(where).
		OrderBy(domain.ColumnLink)
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	return s.queryProcessed(ctx, builder)
}

// PatchProcessed updates the given columns of the record stored under link.
func (s *Store) PatchProcessed(ctx context.Context, link string, patch domain.Patch) error {
	if len(patch) == 0 {
		return nil
	}
	for column := range patch {
		if err := checkColumn(column); err != nil {
			return err
		}
	}

	query, args, err := s.psql.Update(processedTable).
		SetMap(map[string]interface{}(patch)).
		Where(sq.Eq{domain.ColumnLink: link}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build patch: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch processed %s: %w", link, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("patch processed %s: not found", link)
	}
	return nil
}

// RawScores returns every non-null raw_total_score.
func (s *Store) RawScores(ctx context.Context) ([]float64, error) {
	query, args, err := s.psql.Select(domain.ColumnRawTotalScore).
		From(processedTable).
		Where(sq.NotEq{domain.ColumnRawTotalScore: nil}).
		OrderBy(domain.ColumnLink).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build raw scores: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query raw scores: %w", err)
	}
	defer rows.Close()

	out := make([]float64, 0)
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan raw score: %w", err)
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

func (s *Store) queryProcessed(ctx context.Context, builder sq.SelectBuilder) ([]domain.ProcessedRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build processed select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query processed: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ProcessedRecord, 0)
	for rows.Next() {
		r, err := scanProcessed(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("processed rows iteration: %w", err)
	}
	return out, nil
}

func scanProcessed(rows *sql.Rows) (domain.ProcessedRecord, error) {
	var (
		r    domain.ProcessedRecord
		text [12]sql.NullString
		raw  sql.NullFloat64
		tot  sql.NullFloat64
	)

	err := rows.Scan(
		&r.ID, &r.Link,
		&text[0], &text[1], &text[2], &text[3], &text[4],
		&text[5], &text[6], &text[7], &text[8], &text[9], &text[10],
		&r.Prime, &tot, &raw, &text[11], &r.Processed,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return r, fmt.Errorf("scan processed row: %w", err)
	}

	r.FirstName, r.LastName, r.OGImage = text[0].String, text[1].String, text[2].String
	r.OGDescription, r.Title, r.Education = text[3].String, text[4].String, text[5].String
	r.Employer, r.Location, r.Region = text[6].String, text[7].String, text[8].String
	r.Country, r.OtherExperiences, r.ScoringReason = text[9].String, text[10].String, text[11].String
	if tot.Valid {
		r.TotalScore = &tot.Float64
	}
	if raw.Valid {
		r.RawTotalScore = &raw.Float64
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

func buildWhere(q domain.Query) (sq.And, error) {
	where := sq.And{}

	for _, column := range q.Null {
		if err := checkColumn(column); err != nil {
			return nil, err
		}
		if domain.NumericColumns[column] {
			where = append(where, sq.Eq{column: nil})
			continue
		}
		where = append(where, sq.Or{sq.Eq{column: nil}, sq.Eq{column: ""}})
	}

	for _, column := range q.Present {
		if err := checkColumn(column); err != nil {
			return nil, err
		}
		if domain.NumericColumns[column] {
			where = append(where, sq.NotEq{column: nil})
			continue
		}
		where = append(where, sq.NotEq{column: nil}, sq.NotEq{column: ""})
	}

	for column, value := range q.Equals {
		if err := checkColumn(column); err != nil {
			return nil, err
		}
		where = append(where, sq.Eq{column: value})
	}

	return where, nil
}

func checkColumn(column string) error {
	if _, ok := (domain.ProcessedRecord{}).Value(column); !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	return nil
}

func dedupeSource(rows []domain.SourceRecord) []domain.SourceRecord {
	index := make(map[string]int, len(rows))
	out := make([]domain.SourceRecord, 0, len(rows))
	for _, r := range rows {
		if pos, ok := index[r.Link]; ok {
			out[pos] = r
			continue
		}
		index[r.Link] = len(out)
		out = append(out, r)
	}
	return out
}

func dedupeProcessed(rows []domain.ProcessedRecord) []domain.ProcessedRecord {
	index := make(map[string]int, len(rows))
	out := make([]domain.ProcessedRecord, 0, len(rows))
	for _, r := range rows {
		if pos, ok := index[r.Link]; ok {
			out[pos] = r
			continue
		}
		index[r.Link] = len(out)
		out = append(out, r)
	}
	return out
}
