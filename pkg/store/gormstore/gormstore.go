// Package gormstore implements draft.Store on GORM with Postgres, the
// persistence collaborator a hosted deployment plugs in.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
)

// InviteRecord is the invites table row. Data holds the dynamically typed
// field bag as JSON.
type InviteRecord struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	TemplateSlug     string `gorm:"type:varchar(80);not null;index"`
	TemplateCategory string `gorm:"type:varchar(40);not null;index"`
	Slug             string `gorm:"type:varchar(80);index"`
	Status           string `gorm:"type:varchar(20);not null;default:'draft';index"`
	Data             []byte `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName keeps the table name stable across GORM naming strategies.
func (InviteRecord) TableName() string {
	return "invites"
}

// Store is the GORM-backed draft.Store.
type Store struct {
	db *gorm.DB
}

var _ draft.Store = (*Store)(nil)

// Open connects to Postgres and migrates the invites table.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("gormstore: dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing GORM handle, migrating the invites table.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("gormstore: db is required")
	}
	if err := db.AutoMigrate(&InviteRecord{}); err != nil {
		return nil, fmt.Errorf("gormstore: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// GetInvite returns the invite under id.
func (s *Store) GetInvite(ctx context.Context, id string) (draft.InviteDraft, error) {
	var record InviteRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return draft.InviteDraft{}, draft.ErrInviteNotFound
	}
	if err != nil {
		return draft.InviteDraft{}, fmt.Errorf("gormstore: get invite: %w", err)
	}
	return toDraft(record)
}

// CreateInvite inserts a new invite row and returns its id.
func (s *Store) CreateInvite(ctx context.Context, invite draft.NewInvite) (string, error) {
	status := invite.Status
	if status == "" {
		status = draft.StatusDraft
	}
	payload, err := json.Marshal(invite.Data)
	if err != nil {
		return "", fmt.Errorf("gormstore: encode data: %w", err)
	}

	record := InviteRecord{
		ID:               uuid.NewString(),
		TemplateSlug:     invite.TemplateSlug,
		TemplateCategory: string(invite.TemplateCategory),
		Slug:             invite.Slug,
		Status:           string(status),
		Data:             payload,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("gormstore: create invite: %w", err)
	}
	return record.ID, nil
}

// UpdateInvite applies a partial update and returns the stored invite.
func (s *Store) UpdateInvite(ctx context.Context, id string, update draft.InviteUpdate) (draft.InviteDraft, error) {
	changes := make(map[string]any)
	if update.Data != nil {
		payload, err := json.Marshal(update.Data)
		if err != nil {
			return draft.InviteDraft{}, fmt.Errorf("gormstore: encode data: %w", err)
		}
		changes["data"] = payload
	}
	if update.Status != nil {
		changes["status"] = string(*update.Status)
	}
	if update.Slug != nil {
		changes["slug"] = *update.Slug
	}

	if len(changes) > 0 {
		result := s.db.WithContext(ctx).Model(&InviteRecord{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return draft.InviteDraft{}, fmt.Errorf("gormstore: update invite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return draft.InviteDraft{}, draft.ErrInviteNotFound
		}
	}

	return s.GetInvite(ctx, id)
}

// CheckSlugAvailability counts published or draft rows owning the slug,
// excluding excludeID.
func (s *Store) CheckSlugAvailability(ctx context.Context, candidate string, excludeID string) (bool, error) {
	if candidate == "" {
		return false, nil
	}

	query := s.db.WithContext(ctx).Model(&InviteRecord{}).Where("slug = ?", candidate)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("gormstore: check slug: %w", err)
	}
	return count == 0, nil
}

// FindBySlug returns the published invite under slug.
func (s *Store) FindBySlug(ctx context.Context, slug string) (draft.InviteDraft, error) {
	var record InviteRecord
	err := s.db.WithContext(ctx).
		First(&record, "slug = ? AND status = ?", slug, string(draft.StatusPublished)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return draft.InviteDraft{}, draft.ErrInviteNotFound
	}
	if err != nil {
		return draft.InviteDraft{}, fmt.Errorf("gormstore: find by slug: %w", err)
	}
	return toDraft(record)
}

func toDraft(record InviteRecord) (draft.InviteDraft, error) {
	data := make(map[string]any)
	if len(record.Data) > 0 {
		if err := json.Unmarshal(record.Data, &data); err != nil {
			return draft.InviteDraft{}, fmt.Errorf("gormstore: decode data: %w", err)
		}
	}
	return draft.InviteDraft{
		ID:               record.ID,
		TemplateSlug:     record.TemplateSlug,
		TemplateCategory: catalog.Category(record.TemplateCategory),
		Slug:             record.Slug,
		Status:           draft.Status(record.Status),
		Data:             data,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}, nil
}
