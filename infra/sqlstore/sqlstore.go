// Package sqlstore implements store.Store on a local SQLite database through
// gorm. Each slot is a row keyed by (namespace, slot); a put is a single
// upsert statement and therefore atomic.
package sqlstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/wallet/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists records in the records table.
type SQLStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New migrates the records table and returns a store bound to db.
func New(db *gorm.DB, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db, logger: logger}, nil
}

// Put upserts ns/key.
func (s *SQLStore) Put(ctx context.Context, ns store.Namespace, key string, data []byte) error {
	if !store.ValidKey(key) {
		return store.ErrInvalidKey
	}
	rec := Record{
		Namespace: string(ns),
		Slot:      key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		s.logger.Error("Put failed", "namespace", ns, "key", key, "error", err)
		return store.Persistence("upsert "+string(ns), err)
	}
	return nil
}

// Get loads ns/key; any query failure is reported as absent.
func (s *SQLStore) Get(ctx context.Context, ns store.Namespace, key string) ([]byte, bool) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND slot = ?", string(ns), key).
		Take(&rec).Error
	if err != nil {
		return nil, false
	}
	return rec.Data, true
}

// Delete removes ns/key and reports whether a row was deleted.
func (s *SQLStore) Delete(ctx context.Context, ns store.Namespace, key string) bool {
	res := s.db.WithContext(ctx).
		Where("namespace = ? AND slot = ?", string(ns), key).
		Delete(&Record{})
	if res.Error != nil {
		s.logger.Error("Delete failed", "namespace", ns, "key", key, "error", res.Error)
		return false
	}
	return res.RowsAffected > 0
}

// List returns every row of ns.
func (s *SQLStore) List(ctx context.Context, ns store.Namespace) [][]byte {
	var recs []Record
	if err := s.db.WithContext(ctx).Where("namespace = ?", string(ns)).Find(&recs).Error; err != nil {
		s.logger.Error("List failed", "namespace", ns, "error", err)
		return nil
	}
	out := make([][]byte, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Data)
	}
	return out
}
