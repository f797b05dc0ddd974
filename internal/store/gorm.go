package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/cms/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// translate maps driver errors onto the store errors. The gorm handle must be
// opened with TranslateError for duplicate detection to work.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (g *GormStore) CreateCollection(ctx context.Context, collection *model.Collection) error {
	return translate(g.db.WithContext(ctx).Create(collection).Error)
}

func (g *GormStore) GetCollection(ctx context.Context, name string) (*model.Collection, error) {
	var collection model.Collection
	err := g.db.WithContext(ctx).Where("collection = ?", name).First(&collection).Error
	if err != nil {
		return nil, translate(err)
	}
	return &collection, nil
}

func (g *GormStore) ListCollections(ctx context.Context, includeHidden bool) ([]*model.Collection, error) {
	var collections []*model.Collection
	query := g.db.WithContext(ctx).Order("collection asc")
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	err := query.Find(&collections).Error
	return collections, translate(err)
}

func (g *GormStore) CreateField(ctx context.Context, field *model.Field) error {
	return translate(g.db.WithContext(ctx).Create(field).Error)
}

func (g *GormStore) GetField(ctx context.Context, name string) (*model.Field, error) {
	var field model.Field
	err := g.db.WithContext(ctx).Where("field = ?", name).First(&field).Error
	if err != nil {
		return nil, translate(err)
	}
	return &field, nil
}

func (g *GormStore) ListFields(ctx context.Context, collection string) ([]*model.Field, error) {
	var fields []*model.Field
	err := g.db.WithContext(ctx).Where("collection = ?", collection).Order("field asc").Find(&fields).Error
	return fields, translate(err)
}

func (g *GormStore) CreateRelation(ctx context.Context, relation *model.Relation) error {
	return translate(g.db.WithContext(ctx).Create(relation).Error)
}

func (g *GormStore) ListRelations(ctx context.Context, collection string) ([]*model.Relation, error) {
	var relations []*model.Relation
	err := g.db.WithContext(ctx).
		Where("many_collection = ? OR one_collection = ?", collection, collection).
		Order("many_collection asc, field_many asc").
		Find(&relations).Error
	return relations, translate(err)
}

func (g *GormStore) CreateContent(ctx context.Context, content *model.Content) error {
	return translate(g.db.WithContext(ctx).Create(content).Error)
}

func (g *GormStore) GetContent(ctx context.Context, id string) (*model.Content, error) {
	var content model.Content
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&content).Error
	if err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (g *GormStore) GetContentForUpdate(ctx context.Context, id string) (*model.Content, error) {
	var content model.Content
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&content).Error
	if err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (g *GormStore) ListContent(ctx context.Context, filter ContentFilter) ([]*model.Content, int64, error) {
	query := g.db.WithContext(ctx).Model(&model.Content{}).Where("collection = ?", filter.Collection)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var items []*model.Content
	page := query.Order("last_modified desc, id asc").Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}
	if err := page.Find(&items).Error; err != nil {
		return nil, 0, translate(err)
	}

	return items, total, nil
}

func (g *GormStore) CountContent(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Content{}).Where("collection = ?", collection).Count(&count).Error
	return count, translate(err)
}

func (g *GormStore) ListContentModifiedSince(ctx context.Context, since time.Time, afterID string, limit int) ([]*model.Content, error) {
	var items []*model.Content
	err := g.db.WithContext(ctx).
		Where("last_modified > ? OR (last_modified = ? AND id > ?)", since, since, afterID).
		Order("last_modified asc, id asc").
		Limit(limit).
		Find(&items).Error
	return items, translate(err)
}

// UpdateContent is a compare-and-set on the version column.
func (g *GormStore) UpdateContent(ctx context.Context, content *model.Content, expectedVersion int64) error {
	res := g.db.WithContext(ctx).Model(&model.Content{}).
		Where("id = ? AND version = ?", content.ID, expectedVersion).
		Updates(map[string]any{
			"data":          content.Data,
			"status":        content.Status,
			"is_draft":      content.IsDraft,
			"published_at":  content.PublishedAt,
			"updated_at":    content.UpdatedAt,
			"last_modified": content.LastModified,
			"version":       content.Version,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	return nil
}

func (g *GormStore) DeleteContent(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Content{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateRevision(ctx context.Context, revision *model.Revision) error {
	return translate(g.db.WithContext(ctx).Create(revision).Error)
}

func (g *GormStore) GetRevision(ctx context.Context, id string) (*model.Revision, error) {
	var revision model.Revision
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&revision).Error
	if err != nil {
		return nil, translate(err)
	}
	return &revision, nil
}

func (g *GormStore) ListRevisions(ctx context.Context, itemID string) ([]*model.Revision, error) {
	var revisions []*model.Revision
	err := g.db.WithContext(ctx).Where("item_id = ?", itemID).Order("version desc, created_at desc").Find(&revisions).Error
	return revisions, translate(err)
}

func (g *GormStore) UpsertTranslation(ctx context.Context, translation *model.Translation) error {
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "collection"}, {Name: "item_id"}, {Name: "field"}, {Name: "language"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(translation).Error
	return translate(err)
}

func (g *GormStore) GetTranslation(ctx context.Context, itemID, field, language string) (*model.Translation, error) {
	var translation model.Translation
	err := g.db.WithContext(ctx).
		Where("item_id = ? AND field = ? AND language = ?", itemID, field, language).
		First(&translation).Error
	if err != nil {
		return nil, translate(err)
	}
	return &translation, nil
}

func (g *GormStore) ListTranslations(ctx context.Context, itemID string, language string) ([]*model.Translation, error) {
	var translations []*model.Translation
	query := g.db.WithContext(ctx).Where("item_id = ?", itemID)
	if language != "" {
		query = query.Where("language = ?", language)
	}
	err := query.Order("language asc, field asc").Find(&translations).Error
	return translations, translate(err)
}

func (g *GormStore) DeleteTranslation(ctx context.Context, itemID, field, language string) error {
	res := g.db.WithContext(ctx).
		Where("item_id = ? AND field = ? AND language = ?", itemID, field, language).
		Delete(&model.Translation{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeleteItemTranslations(ctx context.Context, itemID string) error {
	return translate(g.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.Translation{}).Error)
}

func (g *GormStore) CreateTerm(ctx context.Context, term *model.Taxonomy) error {
	return translate(g.db.WithContext(ctx).Create(term).Error)
}

func (g *GormStore) GetTerm(ctx context.Context, id string) (*model.Taxonomy, error) {
	var term model.Taxonomy
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&term).Error
	if err != nil {
		return nil, translate(err)
	}
	return &term, nil
}

func (g *GormStore) ListTerms(ctx context.Context, vocabulary string, parentID *string) ([]*model.Taxonomy, error) {
	var terms []*model.Taxonomy
	query := g.db.WithContext(ctx).Where("vocabulary = ?", vocabulary)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("position asc, created_at asc").Find(&terms).Error
	return terms, translate(err)
}

func (g *GormStore) ListTermChildren(ctx context.Context, id string) ([]*model.Taxonomy, error) {
	var terms []*model.Taxonomy
	err := g.db.WithContext(ctx).Where("parent_id = ?", id).Order("position asc, created_at asc").Find(&terms).Error
	return terms, translate(err)
}

func (g *GormStore) NextTermPosition(ctx context.Context, vocabulary string, parentID *string) (int64, error) {
	query := g.db.WithContext(ctx).Model(&model.Taxonomy{}).Where("vocabulary = ?", vocabulary)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var maxPosition int64
	if err := query.Select("COALESCE(MAX(position), -1)").Row().Scan(&maxPosition); err != nil {
		return 0, translate(err)
	}
	return maxPosition + 1, nil
}

func (g *GormStore) UpdateTermParent(ctx context.Context, id string, parentID *string, position int64) error {
	res := g.db.WithContext(ctx).Model(&model.Taxonomy{}).Where("id = ?", id).
		Updates(map[string]any{"parent_id": parentID, "position": position})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeleteTerms(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(g.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Taxonomy{}).Error)
}

func (g *GormStore) CreateNavigation(ctx context.Context, node *model.Navigation) error {
	return translate(g.db.WithContext(ctx).Create(node).Error)
}

func (g *GormStore) GetNavigation(ctx context.Context, id string) (*model.Navigation, error) {
	var node model.Navigation
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&node).Error
	if err != nil {
		return nil, translate(err)
	}
	return &node, nil
}

func (g *GormStore) ListNavigation(ctx context.Context) ([]*model.Navigation, error) {
	var nodes []*model.Navigation
	err := g.db.WithContext(ctx).Order("sort_order asc, label asc").Find(&nodes).Error
	return nodes, translate(err)
}

func (g *GormStore) ListNavigationChildren(ctx context.Context, parentID *string) ([]*model.Navigation, error) {
	var nodes []*model.Navigation
	query := g.db.WithContext(ctx)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("sort_order asc, label asc").Find(&nodes).Error
	return nodes, translate(err)
}

func (g *GormStore) UpdateNavigation(ctx context.Context, node *model.Navigation) error {
	res := g.db.WithContext(ctx).Model(&model.Navigation{}).Where("id = ?", node.ID).
		Updates(map[string]any{
			"label":      node.Label,
			"path":       node.Path,
			"parent_id":  node.ParentID,
			"sort_order": node.Order,
			"visible":    node.Visible,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeleteNavigation(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(g.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Navigation{}).Error)
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
