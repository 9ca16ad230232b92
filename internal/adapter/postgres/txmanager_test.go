package postgres_test

import (
	"context"
	"errors"
	"testing"

	postgres "github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	"github.com/heartmarshall/family-timeline/internal/adapter/postgres/testhelper"
)

func countEntries(t *testing.T, q postgres.Querier, content string) int {
	t.Helper()
	var n int
	err := q.QueryRow(context.Background(),
		`SELECT count(*) FROM entries WHERE content = $1`, content).Scan(&n)
	if err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return n
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	txm := postgres.NewTxManager(pool)

	content := "tx-commit-" + t.Name()
	err := txm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO entries (content, date) VALUES ($1, now())`, content)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: unexpected error: %v", err)
	}

	if got := countEntries(t, pool, content); got != 1 {
		t.Errorf("expected committed row, count = %d", got)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	txm := postgres.NewTxManager(pool)

	content := "tx-rollback-" + t.Name()
	boom := errors.New("boom")
	err := txm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx,
			`INSERT INTO entries (content, date) VALUES ($1, now())`, content); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	if got := countEntries(t, pool, content); got != 0 {
		t.Errorf("expected rollback, count = %d", got)
	}
}

func TestQuerierFromCtx_FallsBackToPool(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)

	q := postgres.QuerierFromCtx(context.Background(), pool)
	if q != postgres.Querier(pool) {
		t.Error("without a transaction in context, the pool must be returned")
	}
}
