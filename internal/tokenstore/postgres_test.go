package tokenstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockedPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_storage").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewPostgresStore(context.Background(), db, "token")
	if err != nil {
		t.Fatalf("NewPostgresStore() error: %v", err)
	}
	return store, mock
}

func TestNewPostgresStoreRequiresDB(t *testing.T) {
	if _, err := NewPostgresStore(context.Background(), nil, "token"); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestPostgresStoreGetNotFound(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectQuery("SELECT value FROM client_storage WHERE key = \\$1").
		WithArgs("token").
		WillReturnError(sql.ErrNoRows)

	tok, found, err := store.Get(context.Background())
	if err != nil || found || tok != "" {
		t.Fatalf("expected not found, got %q found=%v err=%v", tok, found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectQuery("SELECT value FROM client_storage WHERE key = \\$1").
		WithArgs("token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))

	tok, found, err := store.Get(context.Background())
	if err != nil || !found || tok != "abc" {
		t.Fatalf("expected abc, got %q found=%v err=%v", tok, found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectExec("INSERT INTO client_storage").
		WithArgs("token", "abc").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Set(context.Background(), "abc"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreSetEmptyDeletes(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectExec("DELETE FROM client_storage WHERE key = \\$1").
		WithArgs("token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Set(context.Background(), ""); err != nil {
		t.Fatalf("Set(empty) error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
