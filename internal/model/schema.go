package model

import (
	"time"

	"github.com/emrgen/cms/internal/value"
)

// Collection is a dynamically defined content type.
type Collection struct {
	ID           string      `gorm:"primaryKey;size:36"`
	Name         string      `gorm:"column:collection;uniqueIndex:idx_mitre_collections_collection;not null"`
	Hidden       bool        `gorm:"not null;default:false;index:idx_mitre_collections_hidden"`
	Singleton    bool        `gorm:"not null;default:false"`
	Icon         value.Value `gorm:"column:icon"`
	Note         value.Value `gorm:"column:note"`
	Translations value.Value `gorm:"column:translations"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime:false"`
}

func (Collection) TableName() string {
	return "mitre_collections"
}

// Field is a typed attribute of a collection. Field names are unique across
// every collection, not only within their own.
type Field struct {
	ID         string      `gorm:"primaryKey;size:36"`
	Collection string      `gorm:"not null;index;index:idx_mitre_fields_collection_field,priority:1"`
	Name       string      `gorm:"column:field;not null;uniqueIndex:idx_mitre_fields_field;index:idx_mitre_fields_collection_field,priority:2"`
	Type       string      `gorm:"not null;index"`
	Schema     value.Value `gorm:"column:schema"`
	Interface  value.Value `gorm:"column:interface"`
	Options    value.Value `gorm:"column:options"`
}

func (Field) TableName() string {
	return "mitre_fields"
}

// Relation links two collections through one field on each side.
type Relation struct {
	ID             string  `gorm:"primaryKey;size:36"`
	ManyCollection string  `gorm:"not null;index;index:idx_mitre_relations_many_one,priority:1"`
	OneCollection  string  `gorm:"not null;index;index:idx_mitre_relations_many_one,priority:2"`
	FieldMany      string  `gorm:"not null;index"`
	FieldOne       string  `gorm:"not null;index"`
	Type           string  `gorm:"not null"`
	Junction       *string `gorm:""`
}

func (Relation) TableName() string {
	return "mitre_relations"
}
