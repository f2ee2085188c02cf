package postgres

import (
	"context"
	"os"
	"testing"

	check "gopkg.in/check.v1"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/infrastructure/storage/storetest"
)

var _ = check.Suite(new(PostgresStoreTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

// PostgresStoreTestSuite runs the shared store tests against a live database.
type PostgresStoreTestSuite struct {
	store *Store
	storetest.BaseSuite
}

// SetUpSuite connects to the database named by PROFILE_SCANNER_PG_DSN.
func (s *PostgresStoreTestSuite) SetUpSuite(c *check.C) {
	dsn := os.Getenv("PROFILE_SCANNER_PG_DSN")
	if dsn == "" {
		c.Skip("Missing PROFILE_SCANNER_PG_DSN envvar: skipping postgres backed test suite")
	}

	driver := os.Getenv("PROFILE_SCANNER_PG_DRIVER")
	store, err := Open(context.TODO(), driver, dsn, 4)
	c.Assert(err, check.IsNil)
	c.Assert(store.EnsureSchema(context.TODO()), check.IsNil)

	s.store = store
	s.SetStore(store)
}

// SetUpTest truncates both tables.
func (s *PostgresStoreTestSuite) SetUpTest(c *check.C) {
	s.flushDB(c)
}

// TearDownSuite resets the database and closes the pool.
func (s *PostgresStoreTestSuite) TearDownSuite(c *check.C) {
	if s.store != nil {
		s.flushDB(c)
		c.Assert(s.store.Close(), check.IsNil)
	}
}

func (s *PostgresStoreTestSuite) flushDB(c *check.C) {
	_, err := s.store.db.Exec("TRUNCATE search_results, processed_results RESTART IDENTITY")
	c.Assert(err, check.IsNil)
}

func TestBuildWhereRejectsUnknownColumns(t *testing.T) {
	t.Parallel()

	_, err := buildWhere(domain.Query{Null: []string{"no_such_column"}})
	if err == nil || err.Error() != `unknown column "no_such_column"` {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestBuildWhereTreatsEmptyTextAsNull(t *testing.T) {
	t.Parallel()

	where, err := buildWhere(domain.Query{
		Null:    []string{domain.ColumnRegion, domain.ColumnTotalScore},
		Present: []string{domain.ColumnLocation},
	})
	if err != nil {
		t.Fatalf("build where: %v", err)
	}

	sql, args, err := where.ToSql()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	want := "((region IS NULL OR region = ?) AND total_score IS NULL AND location IS NOT NULL AND location <> ?)"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 2 || args[0] != "" || args[1] != "" {
		t.Fatalf("unexpected args: %#v", args)
	}
}
