package model

import "time"

// Taxonomy is a term in a vocabulary. Position keeps the insertion order among
// siblings.
type Taxonomy struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Vocabulary string    `gorm:"not null;index"`
	Term       string    `gorm:"not null;index"`
	ParentID   *string   `gorm:"size:36;index"`
	Position   int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (Taxonomy) TableName() string {
	return "mitre_taxonomy"
}

// Navigation is a menu node.
type Navigation struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Label     string    `gorm:"not null"`
	Path      string    `gorm:"not null"`
	ParentID  *string   `gorm:"size:36;index"`
	Order     int       `gorm:"column:sort_order;not null;default:0"`
	Visible   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Children is filled by tree reads only.
	Children []*Navigation `gorm:"-"`
}

func (Navigation) TableName() string {
	return "mitre_navigation"
}
