package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/cms/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleVersion is returned when a conditional content update matched no row.
	ErrStaleVersion = errors.New("stale content version")
)

type Store interface {
	SchemaStore
	ContentStore
	RevisionStore
	TranslationStore
	TaxonomyStore
	NavigationStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type SchemaStore interface {
	// CreateCollection creates a new collection.
	CreateCollection(ctx context.Context, collection *model.Collection) error
	// GetCollection retrieves a collection by name.
	GetCollection(ctx context.Context, name string) (*model.Collection, error)
	// ListCollections retrieves all collections ordered by name.
	ListCollections(ctx context.Context, includeHidden bool) ([]*model.Collection, error)
	// CreateField creates a new field.
	CreateField(ctx context.Context, field *model.Field) error
	// GetField retrieves a field by its globally unique name.
	GetField(ctx context.Context, name string) (*model.Field, error)
	// ListFields retrieves the fields of a collection.
	ListFields(ctx context.Context, collection string) ([]*model.Field, error)
	// CreateRelation creates a new relation.
	CreateRelation(ctx context.Context, relation *model.Relation) error
	// ListRelations retrieves the relations where the collection is either side.
	ListRelations(ctx context.Context, collection string) ([]*model.Relation, error)
}

type ContentStore interface {
	// CreateContent creates a new content item.
	CreateContent(ctx context.Context, content *model.Content) error
	// GetContent retrieves a content item by ID.
	GetContent(ctx context.Context, id string) (*model.Content, error)
	// GetContentForUpdate retrieves a content item and locks its row until the
	// surrounding transaction ends.
	GetContentForUpdate(ctx context.Context, id string) (*model.Content, error)
	// ListContent retrieves a page of a collection's items and the total count.
	ListContent(ctx context.Context, filter ContentFilter) ([]*model.Content, int64, error)
	// CountContent counts the items of a collection.
	CountContent(ctx context.Context, collection string) (int64, error)
	// ListContentModifiedSince retrieves items ordered after the (since, afterID)
	// cursor by last modification time and id.
	ListContentModifiedSince(ctx context.Context, since time.Time, afterID string, limit int) ([]*model.Content, error)
	// UpdateContent writes the item if its stored version still equals expectedVersion.
	UpdateContent(ctx context.Context, content *model.Content, expectedVersion int64) error
	// DeleteContent deletes a content item by ID.
	DeleteContent(ctx context.Context, id string) error
}

type RevisionStore interface {
	// CreateRevision appends a revision.
	CreateRevision(ctx context.Context, revision *model.Revision) error
	// GetRevision retrieves a revision by ID.
	GetRevision(ctx context.Context, id string) (*model.Revision, error)
	// ListRevisions retrieves the revisions of an item, newest first.
	ListRevisions(ctx context.Context, itemID string) ([]*model.Revision, error)
}

type TranslationStore interface {
	// UpsertTranslation creates or replaces the translation for its key.
	UpsertTranslation(ctx context.Context, translation *model.Translation) error
	// GetTranslation retrieves one translation by its key.
	GetTranslation(ctx context.Context, itemID, field, language string) (*model.Translation, error)
	// ListTranslations retrieves translations of an item, all languages when language is empty.
	ListTranslations(ctx context.Context, itemID string, language string) ([]*model.Translation, error)
	// DeleteTranslation deletes one translation.
	DeleteTranslation(ctx context.Context, itemID, field, language string) error
	// DeleteItemTranslations deletes every translation of an item.
	DeleteItemTranslations(ctx context.Context, itemID string) error
}

type TaxonomyStore interface {
	CreateTerm(ctx context.Context, term *model.Taxonomy) error
	GetTerm(ctx context.Context, id string) (*model.Taxonomy, error)
	// ListTerms retrieves the children of parentID in a vocabulary, roots when parentID is nil.
	ListTerms(ctx context.Context, vocabulary string, parentID *string) ([]*model.Taxonomy, error)
	// ListTermChildren retrieves the children of a term in insertion order.
	ListTermChildren(ctx context.Context, id string) ([]*model.Taxonomy, error)
	// NextTermPosition returns the position a new child of parentID receives.
	NextTermPosition(ctx context.Context, vocabulary string, parentID *string) (int64, error)
	UpdateTermParent(ctx context.Context, id string, parentID *string, position int64) error
	DeleteTerms(ctx context.Context, ids []string) error
}

type NavigationStore interface {
	CreateNavigation(ctx context.Context, node *model.Navigation) error
	GetNavigation(ctx context.Context, id string) (*model.Navigation, error)
	// ListNavigation retrieves every menu node ordered for display.
	ListNavigation(ctx context.Context) ([]*model.Navigation, error)
	// ListNavigationChildren retrieves the children of parentID, roots when parentID is nil.
	ListNavigationChildren(ctx context.Context, parentID *string) ([]*model.Navigation, error)
	UpdateNavigation(ctx context.Context, node *model.Navigation) error
	DeleteNavigation(ctx context.Context, ids []string) error
}

// ContentFilter selects a page of content items.
type ContentFilter struct {
	Collection string
	Status     string
	Offset     int
	Limit      int
}
