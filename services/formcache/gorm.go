package formcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	database "casa_portal_go/db"
	"casa_portal_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a persisted metadata row
type Entry struct {
	FormID    int       `gorm:"primaryKey;autoIncrement:false" json:"form_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Fields    int       `json:"fields"`
	Payload   string    `gorm:"type:text;not null" json:"-"`
	FetchedAt time.Time `gorm:"not null;index" json:"fetched_at"`
}

// TableName specifies the table name for Entry
func (Entry) TableName() string {
	return "form_meta_cache"
}

// GormCache persists metadata so restarts do not refetch every form
type GormCache struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewGormCache migrates the cache table and returns the store
func NewGormCache(conn *gorm.DB, ttl time.Duration) (*GormCache, error) {
	if err := database.AutoMigrate(conn, &Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate form cache: %w", err)
	}
	return &GormCache{db: conn, ttl: ttl, now: time.Now}, nil
}

func (c *GormCache) Get(ctx context.Context, formID int) (*models.FormMeta, bool) {
	var entry Entry
	if err := c.db.WithContext(ctx).First(&entry, "form_id = ?", formID).Error; err != nil {
		return nil, false
	}
	if expired(entry.FetchedAt, c.ttl, c.now()) {
		_ = c.Invalidate(ctx, formID)
		return nil, false
	}
	var meta models.FormMeta
	if err := json.Unmarshal([]byte(entry.Payload), &meta); err != nil {
		return nil, false
	}
	return &meta, true
}

func (c *GormCache) Set(ctx context.Context, formID int, meta *models.FormMeta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode form metadata: %w", err)
	}
	entry := Entry{
		FormID:    formID,
		Title:     meta.Title,
		Fields:    len(meta.Fields),
		Payload:   string(payload),
		FetchedAt: c.now(),
	}
	err = c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to store form metadata: %w", err)
	}
	return nil
}

func (c *GormCache) Invalidate(ctx context.Context, formID int) error {
	if err := c.db.WithContext(ctx).Delete(&Entry{}, "form_id = ?", formID).Error; err != nil {
		return fmt.Errorf("failed to invalidate form metadata: %w", err)
	}
	return nil
}

// List returns all persisted entries ordered by form id
func (c *GormCache) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.db.WithContext(ctx).Order("form_id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list form metadata: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and returns how many were deleted
func (c *GormCache) Clear(ctx context.Context) (int64, error) {
	result := c.db.WithContext(ctx).Where("1 = 1").Delete(&Entry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear form metadata: %w", result.Error)
	}
	return result.RowsAffected, nil
}
