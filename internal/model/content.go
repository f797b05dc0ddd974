package model

import (
	"time"

	"github.com/emrgen/cms/internal/value"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Content is one item of a collection. Version is the optimistic locking token
// and grows by one on every mutation.
type Content struct {
	ID           string      `gorm:"primaryKey;size:36"`
	Collection   string      `gorm:"not null;index;index:idx_mitre_content_collection_status,priority:1;index:idx_content_collection_status_lastmod,priority:1"`
	Data         value.Value `gorm:"not null"`
	Status       string      `gorm:"not null;default:draft;index;index:idx_mitre_content_collection_status,priority:2;index:idx_content_collection_status_lastmod,priority:2"`
	CreatedBy    string      `gorm:"not null;index:idx_mitre_content_created_by"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    *time.Time  `gorm:"autoUpdateTime:false"`
	PublishedAt  *time.Time
	IsDraft      bool      `gorm:"not null;index"`
	LastModified time.Time `gorm:"not null;index:idx_content_collection_status_lastmod,priority:3"`
	Version      int64     `gorm:"not null;default:1"`
}

func (Content) TableName() string {
	return "mitre_content"
}

func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}

// Revision is an immutable snapshot of a content item taken right before it
// was changed. Version is the item version the snapshot captured.
type Revision struct {
	ID         string      `gorm:"primaryKey;size:36"`
	Collection string      `gorm:"not null;index"`
	ItemID     string      `gorm:"not null;index:idx_mitre_revisions_item_version,priority:1"`
	Version    int64       `gorm:"not null;index:idx_mitre_revisions_item_version,priority:2"`
	Data       value.Value `gorm:"not null"`
	Status     string      `gorm:"not null;default:draft;index"`
	CreatedBy  string      `gorm:"not null"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime:false"`
}

func (Revision) TableName() string {
	return "mitre_revisions"
}

// Translation overrides one field of one item for a language.
type Translation struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Collection string  `gorm:"not null;uniqueIndex:idx_mitre_translations_key,priority:1"`
	ItemID     string  `gorm:"not null;index;uniqueIndex:idx_mitre_translations_key,priority:2"`
	Field      string  `gorm:"not null;uniqueIndex:idx_mitre_translations_key,priority:3"`
	Language   string  `gorm:"not null;uniqueIndex:idx_mitre_translations_key,priority:4"`
	Value      *string `gorm:""`
}

func (Translation) TableName() string {
	return "mitre_translations"
}
