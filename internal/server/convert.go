package server

import (
	"encoding/json"
	"fmt"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/value"
)

// rawValue renders a value for the wire, null values are left out.
func rawValue(v value.Value) json.RawMessage {
	if v.IsNull() {
		return nil
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return nil
	}
	return data
}

func parseValue(name string, raw json.RawMessage) (value.Value, error) {
	v, err := value.Parse(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: %s is not valid json: %v", errInvalidRequest, name, err)
	}
	return v, nil
}

func collectionToProto(c *model.Collection) *v1.Collection {
	return &v1.Collection{
		ID:           c.ID,
		Name:         c.Name,
		Hidden:       c.Hidden,
		Singleton:    c.Singleton,
		Icon:         rawValue(c.Icon),
		Note:         rawValue(c.Note),
		Translations: rawValue(c.Translations),
		CreatedAt:    c.CreatedAt,
	}
}

func fieldToProto(f *model.Field) *v1.Field {
	return &v1.Field{
		ID:         f.ID,
		Collection: f.Collection,
		Field:      f.Name,
		Type:       f.Type,
		Schema:     rawValue(f.Schema),
		Interface:  rawValue(f.Interface),
		Options:    rawValue(f.Options),
	}
}

func relationToProto(r *model.Relation) *v1.Relation {
	return &v1.Relation{
		ID:             r.ID,
		ManyCollection: r.ManyCollection,
		OneCollection:  r.OneCollection,
		FieldMany:      r.FieldMany,
		FieldOne:       r.FieldOne,
		Type:           r.Type,
		Junction:       r.Junction,
	}
}

func contentToProto(c *model.Content) *v1.Content {
	return &v1.Content{
		ID:           c.ID,
		Collection:   c.Collection,
		Data:         rawValue(c.Data),
		Status:       c.Status,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		PublishedAt:  c.PublishedAt,
		IsDraft:      c.IsDraft,
		LastModified: c.LastModified,
		Version:      c.Version,
	}
}

func revisionToProto(r *model.Revision) *v1.Revision {
	return &v1.Revision{
		ID:         r.ID,
		Collection: r.Collection,
		ItemID:     r.ItemID,
		Version:    r.Version,
		Data:       rawValue(r.Data),
		Status:     r.Status,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
}

func translationToProto(t *model.Translation) *v1.Translation {
	return &v1.Translation{
		ID:         t.ID,
		Collection: t.Collection,
		ItemID:     t.ItemID,
		Field:      t.Field,
		Language:   t.Language,
		Value:      t.Value,
	}
}

func termToProto(t *model.Taxonomy) *v1.Term {
	return &v1.Term{
		ID:         t.ID,
		Vocabulary: t.Vocabulary,
		Term:       t.Term,
		ParentID:   t.ParentID,
		Position:   t.Position,
		CreatedAt:  t.CreatedAt,
	}
}

func navNodeToProto(n *model.Navigation) *v1.NavNode {
	node := &v1.NavNode{
		ID:        n.ID,
		Label:     n.Label,
		Path:      n.Path,
		ParentID:  n.ParentID,
		Order:     n.Order,
		Visible:   n.Visible,
		CreatedAt: n.CreatedAt,
	}
	for _, child := range n.Children {
		node.Children = append(node.Children, navNodeToProto(child))
	}
	return node
}

// mapSlice converts every element with fn, an empty input gives an empty slice.
func mapSlice[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
