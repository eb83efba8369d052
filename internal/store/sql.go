package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hut/internal/domain"
)

const DefaultDocumentKey = "primary"

type documentRow struct {
	ID        string         `gorm:"primaryKey;size:64"`
	Body      datatypes.JSON `gorm:"not null"`
	Version   int64          `gorm:"not null"`
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "hut_documents" }

// SQLPersister stores the whole document as one JSON row. The row carries a
// version so a second process writing the same key is detected instead of
// silently overwritten.
type SQLPersister struct {
	db  *gorm.DB
	key string

	mu      sync.Mutex
	exists  bool
	version int64
}

func NewSQLPersister(db *gorm.DB, key string) *SQLPersister {
	if key == "" {
		key = DefaultDocumentKey
	}
	return &SQLPersister{db: db, key: key}
}

func (p *SQLPersister) AutoMigrate() error {
	return p.db.AutoMigrate(&documentRow{})
}

func (p *SQLPersister) Load(ctx context.Context) (*domain.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var row documentRow
	err := p.db.WithContext(ctx).Where("id = ?", p.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p.exists = false
		p.version = 0
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}

	doc, err := Decode(row.Body)
	if err != nil {
		return nil, err
	}
	p.exists = true
	p.version = row.Version
	return doc, nil
}

func (p *SQLPersister) Persist(ctx context.Context, doc *domain.Document) error {
	body, err := Encode(doc)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	db := p.db.WithContext(ctx)
	if !p.exists {
		row := documentRow{ID: p.key, Body: datatypes.JSON(body), Version: 1, UpdatedAt: time.Now().UTC()}
		if err := db.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrConcurrentWriter
			}
			return err
		}
		p.exists = true
		p.version = 1
		return nil
	}

	res := db.Model(&documentRow{}).
		Where("id = ? AND version = ?", p.key, p.version).
		Updates(map[string]any{
			"body":       datatypes.JSON(body),
			"version":    p.version + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentWriter
	}
	p.version++
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
