package v1

import (
	"encoding/json"
	"time"
)

type Collection struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Hidden       bool            `json:"hidden"`
	Singleton    bool            `json:"singleton"`
	Icon         json.RawMessage `json:"icon,omitempty"`
	Note         json.RawMessage `json:"note,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Field struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	Field      string          `json:"field"`
	Type       string          `json:"type"`
	Schema     json.RawMessage `json:"schema,omitempty"`
	Interface  json.RawMessage `json:"interface,omitempty"`
	Options    json.RawMessage `json:"options,omitempty"`
}

type Relation struct {
	ID             string  `json:"id"`
	ManyCollection string  `json:"many_collection"`
	OneCollection  string  `json:"one_collection"`
	FieldMany      string  `json:"field_many"`
	FieldOne       string  `json:"field_one"`
	Type           string  `json:"type"`
	Junction       *string `json:"junction,omitempty"`
}

type Content struct {
	ID           string          `json:"id"`
	Collection   string          `json:"collection"`
	Data         json.RawMessage `json:"data"`
	Status       string          `json:"status"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	PublishedAt  *time.Time      `json:"published_at,omitempty"`
	IsDraft      bool            `json:"is_draft"`
	LastModified time.Time       `json:"last_modified"`
	Version      int64           `json:"version"`
}

type Revision struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	ItemID     string          `json:"item_id"`
	Version    int64           `json:"version"`
	Data       json.RawMessage `json:"data"`
	Status     string          `json:"status"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Translation struct {
	ID         string  `json:"id"`
	Collection string  `json:"collection"`
	ItemID     string  `json:"item_id"`
	Field      string  `json:"field"`
	Language   string  `json:"language"`
	Value      *string `json:"value"`
}

type Term struct {
	ID         string    `json:"id"`
	Vocabulary string    `json:"vocabulary"`
	Term       string    `json:"term"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

type NavNode struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Path      string     `json:"path"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Order     int        `json:"order"`
	Visible   bool       `json:"visible"`
	CreatedAt time.Time  `json:"created_at"`
	Children  []*NavNode `json:"children,omitempty"`
}
