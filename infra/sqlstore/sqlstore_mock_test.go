package sqlstore

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/wallet/pkg/domain"
	"github.com/amirasaad/wallet/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore binds a store to go-sqlmock through gorm's postgres
// dialector, which opens without probing the server.
func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() }) //nolint: errcheck
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &SQLStore{db: db, logger: slog.New(slog.DiscardHandler)}, mock
}

func TestSQLStore_PutIsSingleUpsert(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "records" (.+) VALUES (.+) ON CONFLICT (.+) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Put(context.Background(), store.Users, "alice", []byte(`{}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PutFailureIsPersistence(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "records"`).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := s.Put(context.Background(), store.Wallets, "w1", []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ReadFailuresAreAbsent(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "records" WHERE`).WillReturnError(errors.New("database is locked"))
	_, ok := s.Get(ctx, store.Users, "alice")
	assert.False(t, ok)

	mock.ExpectQuery(`SELECT \* FROM "records" WHERE`).WillReturnError(errors.New("database is locked"))
	assert.Empty(t, s.List(ctx, store.Users))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "records"`).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()
	assert.False(t, s.Delete(ctx, store.Sessions, "tok"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InvalidKeyNeverQueries(t *testing.T) {
	s, mock := newMockStore(t)
	err := s.Put(context.Background(), store.Users, "../etc", []byte(`{}`))
	assert.ErrorIs(t, err, store.ErrInvalidKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
