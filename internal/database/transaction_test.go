package database

import (
	"context"
	"errors"
	"testing"
)

func createItemsTable(t *testing.T, db Database) {
	t.Helper()
	if err := db.Session(context.Background()).Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
}

func countItems(t *testing.T, db Database) int64 {
	t.Helper()
	var count int64
	if err := db.Session(context.Background()).Raw("SELECT COUNT(*) FROM test_items").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestWithTransaction_Commits(t *testing.T) {
	db := openTestDB(t)
	createItemsTable(t, db)

	err := WithTransaction(context.Background(), db, func(ctx context.Context) error {
		if !InTransaction(ctx) {
			t.Error("context should carry the transaction")
		}
		return db.Session(ctx).Exec("INSERT INTO test_items (name) VALUES (?)", "certificate").Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	if got := countItems(t, db); got != 1 {
		t.Errorf("expected 1 row, got %d", got)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	createItemsTable(t, db)

	sentinel := errors.New("boom")
	err := WithTransaction(context.Background(), db, func(ctx context.Context) error {
		if err := db.Session(ctx).Exec("INSERT INTO test_items (name) VALUES (?)", "note").Error; err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if got := countItems(t, db); got != 0 {
		t.Errorf("expected rollback, got %d rows", got)
	}
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	createItemsTable(t, db)

	func() {
		defer func() { _ = recover() }()
		_ = WithTransaction(context.Background(), db, func(ctx context.Context) error {
			_ = db.Session(ctx).Exec("INSERT INTO test_items (name) VALUES (?)", "x").Error
			panic("unexpected")
		})
	}()

	if got := countItems(t, db); got != 0 {
		t.Errorf("expected rollback after panic, got %d rows", got)
	}
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	db := openTestDB(t)
	createItemsTable(t, db)

	sentinel := errors.New("outer failed")
	err := WithTransaction(context.Background(), db, func(ctx context.Context) error {
		inner := WithTransaction(ctx, db, func(ctx context.Context) error {
			return db.Session(ctx).Exec("INSERT INTO test_items (name) VALUES (?)", "inner").Error
		})
		if inner != nil {
			return inner
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if got := countItems(t, db); got != 0 {
		t.Errorf("inner write should roll back with outer, got %d rows", got)
	}
}

func TestWithTransactionResult(t *testing.T) {
	db := openTestDB(t)
	createItemsTable(t, db)

	id, err := WithTransactionResult(context.Background(), db, func(ctx context.Context) (int64, error) {
		if err := db.Session(ctx).Exec("INSERT INTO test_items (name) VALUES (?)", "a").Error; err != nil {
			return 0, err
		}
		var id int64
		err := db.Session(ctx).Raw("SELECT last_insert_rowid()").Scan(&id).Error
		return id, err
	})
	if err != nil {
		t.Fatalf("WithTransactionResult: %v", err)
	}
	if id != 1 {
		t.Errorf("expected id 1, got %d", id)
	}
}
