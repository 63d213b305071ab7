package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/girojogos/duoguard/errors"
	"github.com/girojogos/duoguard/logger"
)

// ErrNotFound is returned when no document exists at a path.
var ErrNotFound = errors.New("store: document not found")

// Store is the sqlite-backed document store.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
	cfg Config
}

// Open opens the store with retry and migrates the schema.
func Open(cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.WithComponent("store")

	gormCfg := &gorm.Config{Logger: newGormLogger(log, cfg.LogLevel)}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err == nil {
			break
		}
		log.Warn("store open failed, retrying", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
		))
		time.Sleep(cfg.RetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Path, err)
	}

	if err := db.AutoMigrate(&documentRow{}, &auditRow{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	log.Info("store opened", logger.Fields("path", cfg.Path))
	return &Store{db: db, log: log, cfg: cfg}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the document at path, or ErrNotFound.
func (s *Store) Get(ctx context.Context, path string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return rowToDocument(&row)
}

// GetDocument is the read-only snapshot view the policy evaluator uses.
func (s *Store) GetDocument(ctx context.Context, path string) (map[string]any, bool, error) {
	doc, err := s.Get(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Data, true, nil
}

// Put writes data at path, creating or replacing the document. The create
// time of an existing document is preserved.
func (s *Store) Put(ctx context.Context, path string, data map[string]any) (*Document, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, apperrors.InvalidDocument(fmt.Sprintf("document is not serializable: %v", err))
	}

	now := time.Now().UTC()
	row := documentRow{
		Path:       path,
		Collection: Collection(path),
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var existing documentRow
	err = s.db.WithContext(ctx).First(&existing, "path = ?", path).Error
	switch {
	case err == nil:
		row.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Store(err)
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return rowToDocument(&row)
}

// Delete removes the document at path. Deleting a missing document returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, path string) error {
	res := s.db.WithContext(ctx).Delete(&documentRow{}, "path = ?", path)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the documents of a collection matching every equality
// filter. Filters are applied to the decoded document data; a sqlite JSON
// index is deliberately not involved — collections here are small and the
// policy layer has already constrained the query shape.
func (s *Store) List(ctx context.Context, collection string, filters []Filter) ([]*Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("path").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}

	docs := make([]*Document, 0, len(rows))
	for i := range rows {
		doc, err := rowToDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		if matchesFilters(doc.Data, filters) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// AppendAudit records one privileged operation.
func (s *Store) AppendAudit(ctx context.Context, actor, operation, path string) (*AuditEntry, error) {
	row := auditRow{
		ID:        uuid.New().String(),
		Actor:     actor,
		Operation: operation,
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return &AuditEntry{
		ID: row.ID, Actor: row.Actor, Operation: row.Operation,
		Path: row.Path, Time: row.CreatedAt,
	}, nil
}

// AuditTrail returns the audit entries written by actor, newest first.
func (s *Store) AuditTrail(ctx context.Context, actor string) ([]*AuditEntry, error) {
	var rows []auditRow
	err := s.db.WithContext(ctx).
		Where("actor = ?", actor).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	entries := make([]*AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &AuditEntry{
			ID: row.ID, Actor: row.Actor, Operation: row.Operation,
			Path: row.Path, Time: row.CreatedAt,
		})
	}
	return entries, nil
}

// IsAdmin implements the identity.AdminDirectory fallback: it reads the
// caller's user document and reports its isAdmin flag.
func (s *Store) IsAdmin(ctx context.Context, uid string) (bool, error) {
	data, ok, err := s.GetDocument(ctx, "users/"+uid)
	if err != nil || !ok {
		return false, err
	}
	isAdmin, _ := data["isAdmin"].(bool)
	return isAdmin, nil
}

// Collection returns the collection a document path belongs to: the path
// minus its final segment.
func Collection(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

func rowToDocument(row *documentRow) (*Document, error) {
	var data map[string]any
	if err := json.Unmarshal(row.Body, &data); err != nil {
		return nil, apperrors.Store(fmt.Errorf("decode %s: %w", row.Path, err))
	}
	return &Document{
		Path:       row.Path,
		Data:       data,
		CreateTime: row.CreatedAt,
		UpdateTime: row.UpdatedAt,
	}, nil
}

func matchesFilters(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !equalJSON(data[f.Field], f.Value) {
			return false
		}
	}
	return true
}

// equalJSON compares a decoded JSON value with a filter value, normalizing
// numerics (decoded JSON numbers are float64).
func equalJSON(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
