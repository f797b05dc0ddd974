package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/value"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Relation types the registry knows about. Any other type is stored as is.
const (
	RelationManyToOne  = "m2o"
	RelationOneToMany  = "o2m"
	RelationManyToMany = "m2m"
	RelationOneToOne   = "o2o"
)

type DefineCollectionRequest struct {
	Name         string
	Hidden       bool
	Singleton    bool
	Icon         value.Value
	Note         value.Value
	Translations value.Value
}

type DefineFieldRequest struct {
	Collection string
	Field      string
	Type       string
	Schema     value.Value
	Interface  value.Value
	Options    value.Value
}

type DefineRelationRequest struct {
	ManyCollection string
	OneCollection  string
	FieldMany      string
	FieldOne       string
	Type           string
	Junction       *string
}

// SchemaRegistry owns the collection, field and relation definitions. It is an
// ordinary value bound to a store, several registries may live in one process.
type SchemaRegistry struct {
	store store.Store
	now   Clock
}

func NewSchemaRegistry(store store.Store) *SchemaRegistry {
	return &SchemaRegistry{store: store, now: systemClock}
}

// WithClock replaces the registry clock.
func (r *SchemaRegistry) WithClock(clock Clock) *SchemaRegistry {
	r.now = clock
	return r
}

// DefineCollection registers a new collection.
func (r *SchemaRegistry) DefineCollection(ctx context.Context, req DefineCollectionRequest) (*model.Collection, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: collection name is empty", ErrInvalidValue)
	}

	collection := &model.Collection{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Hidden:       req.Hidden,
		Singleton:    req.Singleton,
		Icon:         req.Icon,
		Note:         req.Note,
		Translations: req.Translations,
		CreatedAt:    r.now(),
	}

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		_, err := tx.GetCollection(ctx, req.Name)
		if err == nil {
			return fmt.Errorf("%w: collection %s", ErrDuplicateName, req.Name)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		err = tx.CreateCollection(ctx, collection)
		if err != nil {
			return fmt.Errorf("%w: collection %s", storeError(err, ErrNotFound), req.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("collection %s defined", collection.Name)
	return collection, nil
}

// DefineField adds a field to a collection. Field names share one namespace
// across all collections.
func (r *SchemaRegistry) DefineField(ctx context.Context, req DefineFieldRequest) (*model.Field, error) {
	if req.Field == "" {
		return nil, fmt.Errorf("%w: field name is empty", ErrInvalidValue)
	}

	field := &model.Field{
		ID:         uuid.New().String(),
		Collection: req.Collection,
		Name:       req.Field,
		Type:       req.Type,
		Schema:     req.Schema,
		Interface:  req.Interface,
		Options:    req.Options,
	}

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		_, err := tx.GetCollection(ctx, req.Collection)
		if err != nil {
			return fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), req.Collection)
		}

		existing, err := tx.GetField(ctx, req.Field)
		if err == nil {
			return fmt.Errorf("%w: field %s is defined on %s", ErrDuplicateName, req.Field, existing.Collection)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		err = tx.CreateField(ctx, field)
		if err != nil {
			return fmt.Errorf("%w: field %s", storeError(err, ErrNotFound), req.Field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("field %s defined on %s", field.Name, field.Collection)
	return field, nil
}

// DefineRelation links two collections. Each side's field must belong to its
// side's collection; m2m relations also need an existing junction collection.
func (r *SchemaRegistry) DefineRelation(ctx context.Context, req DefineRelationRequest) (*model.Relation, error) {
	relation := &model.Relation{
		ID:             uuid.New().String(),
		ManyCollection: req.ManyCollection,
		OneCollection:  req.OneCollection,
		FieldMany:      req.FieldMany,
		FieldOne:       req.FieldOne,
		Type:           req.Type,
		Junction:       req.Junction,
	}

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		collections := mapset.NewSet(req.ManyCollection, req.OneCollection)
		if req.Junction != nil && *req.Junction != "" {
			collections.Add(*req.Junction)
		} else if req.Type == RelationManyToMany {
			return fmt.Errorf("%w: m2m relation needs a junction collection", ErrUnknownCollection)
		}

		names := collections.ToSlice()
		sort.Strings(names)
		for _, name := range names {
			_, err := tx.GetCollection(ctx, name)
			if err != nil {
				return fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), name)
			}
		}

		sides := map[string]string{req.FieldMany: req.ManyCollection, req.FieldOne: req.OneCollection}
		for _, name := range []string{req.FieldMany, req.FieldOne} {
			field, err := tx.GetField(ctx, name)
			if err != nil {
				return fmt.Errorf("%w: %s", storeError(err, ErrUnknownField), name)
			}
			if field.Collection != sides[name] {
				return fmt.Errorf("%w: %s is not a field of %s", ErrUnknownField, name, sides[name])
			}
		}

		return tx.CreateRelation(ctx, relation)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("relation %s.%s -> %s.%s defined", relation.ManyCollection, relation.FieldMany, relation.OneCollection, relation.FieldOne)
	return relation, nil
}

// ResolveSchema returns the fields of a collection and every relation it takes
// part in.
func (r *SchemaRegistry) ResolveSchema(ctx context.Context, collection string) (*Schema, error) {
	return resolveSchema(ctx, r.store, collection)
}

func resolveSchema(ctx context.Context, s store.SchemaStore, name string) (*Schema, error) {
	collection, err := s.GetCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), name)
	}

	fields, err := s.ListFields(ctx, name)
	if err != nil {
		return nil, err
	}

	relations, err := s.ListRelations(ctx, name)
	if err != nil {
		return nil, err
	}

	return &Schema{Collection: collection, Fields: fields, Relations: relations}, nil
}

func (r *SchemaRegistry) GetCollection(ctx context.Context, name string) (*model.Collection, error) {
	collection, err := r.store.GetCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), name)
	}
	return collection, nil
}

func (r *SchemaRegistry) ListCollections(ctx context.Context, includeHidden bool) ([]*model.Collection, error) {
	return r.store.ListCollections(ctx, includeHidden)
}

// Schema is the structural description of one collection.
type Schema struct {
	Collection *model.Collection
	Fields     []*model.Field
	Relations  []*model.Relation
}

// Field returns the named field of the collection.
func (s *Schema) Field(name string) (*model.Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Validate checks a content payload against the declared fields. Keys without a
// field are rejected, known field types are checked, null is always allowed.
func (s *Schema) Validate(data value.Value) error {
	if data.IsNull() {
		return nil
	}
	if !data.IsObject() {
		return fmt.Errorf("%w: %s payload must be an object, got %s", ErrInvalidValue, s.Collection.Name, data.Kind())
	}

	for _, key := range data.Keys() {
		field, ok := s.Field(key)
		if !ok {
			return fmt.Errorf("%w: %s has no field %s", ErrUnknownField, s.Collection.Name, key)
		}

		member, _ := data.Get(key)
		if err := checkFieldValue(field, member); err != nil {
			return err
		}
	}

	return nil
}

func checkFieldValue(field *model.Field, v value.Value) error {
	if v.IsNull() {
		return nil
	}

	ok := true
	switch field.Type {
	case "string", "text":
		ok = v.Kind() == value.KindString
	case "uuid":
		_, err := uuid.Parse(v.AsString())
		ok = v.Kind() == value.KindString && err == nil
	case "timestamp":
		_, err := time.Parse(time.RFC3339, v.AsString())
		ok = v.Kind() == value.KindString && err == nil
	case "integer":
		ok = v.IsInteger()
	case "float":
		ok = v.Kind() == value.KindNumber
	case "boolean":
		ok = v.Kind() == value.KindBool
	}

	if !ok {
		return fmt.Errorf("%w: field %s expects %s, got %s", ErrInvalidValue, field.Name, field.Type, v.Kind())
	}
	return nil
}
