package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/value"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type CreateContentRequest struct {
	Collection string
	Data       value.Value
	CreatedBy  string
	// Status defaults to draft.
	Status string
}

type UpdateContentRequest struct {
	ID              string
	ExpectedVersion int64
	// Data is merged into the stored payload key by key, or replaces it when
	// Replace is set. A null patch without Replace leaves the payload alone.
	Data    value.Value
	Replace bool
	// Status is left unchanged when nil.
	Status *string
	Actor  string
}

type ListContentRequest struct {
	Collection string
	Status     string
	Offset     int
	Limit      int
}

type RestoreRevisionRequest struct {
	RevisionID      string
	ExpectedVersion int64
	Actor           string
}

type ContentOptions struct {
	// DefaultLanguage is the language of the stored payloads, translations are
	// only overlaid for other languages.
	DefaultLanguage string
	// Strict validates payloads against the collection's fields.
	Strict bool
}

// ContentService is the versioned content store. Every mutation runs in one
// transaction together with its revision snapshot.
type ContentService struct {
	store   store.Store
	cache   cache.ContentCache
	queue   queue.EventQueue
	options ContentOptions
	now     Clock
}

func NewContentService(store store.Store, cache cache.ContentCache, queue queue.EventQueue, options ContentOptions) *ContentService {
	if options.DefaultLanguage == "" {
		options.DefaultLanguage = "en"
	}
	return &ContentService{
		store:   store,
		cache:   cache,
		queue:   queue,
		options: options,
		now:     systemClock,
	}
}

// WithClock replaces the service clock.
func (c *ContentService) WithClock(clock Clock) *ContentService {
	c.now = clock
	return c
}

// CreateContent stores a new item at version 1.
func (c *ContentService) CreateContent(ctx context.Context, req CreateContentRequest) (*model.Content, error) {
	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	data := req.Data
	if data.IsNull() {
		data = value.Object(nil)
	}

	now := c.now()
	content := &model.Content{
		ID:           uuid.New().String(),
		Collection:   req.Collection,
		Data:         data,
		Status:       status,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    now,
		IsDraft:      status != model.StatusPublished,
		LastModified: now,
		Version:      1,
	}
	if status == model.StatusPublished {
		content.PublishedAt = &now
	}

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		collection, err := tx.GetCollection(ctx, req.Collection)
		if err != nil {
			return fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), req.Collection)
		}

		if collection.Singleton {
			count, err := tx.CountContent(ctx, collection.Name)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: %s", ErrSingletonExists, collection.Name)
			}
		}

		if err := c.validate(ctx, tx, req.Collection, data); err != nil {
			return err
		}

		return tx.CreateContent(ctx, content)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("content %s created in %s", content.ID, content.Collection)

	c.refreshCache(ctx, content)
	c.publish(ctx, queue.EventContentCreated, content, req.CreatedBy)
	if content.IsPublished() {
		c.publish(ctx, queue.EventContentPublished, content, req.CreatedBy)
	}

	return content, nil
}

// UpdateContent applies a change if req.ExpectedVersion is still the stored
// version. The pre-update state is kept as a revision.
func (c *ContentService) UpdateContent(ctx context.Context, req UpdateContentRequest) (*model.Content, error) {
	var previous, next *model.Content

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		current, err := tx.GetContent(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("%w: content %s", storeError(err, ErrNotFound), req.ID)
		}
		if current.Version != req.ExpectedVersion {
			return &VersionConflictError{ItemID: req.ID, Expected: req.ExpectedVersion, Current: current.Version}
		}

		now := c.now()
		actor := req.Actor
		if actor == "" {
			actor = current.CreatedBy
		}

		revision := &model.Revision{
			ID:         uuid.New().String(),
			Collection: current.Collection,
			ItemID:     current.ID,
			Version:    current.Version,
			Data:       current.Data,
			Status:     current.Status,
			CreatedBy:  actor,
			CreatedAt:  now,
		}
		if err := tx.CreateRevision(ctx, revision); err != nil {
			return err
		}

		updated := *current
		switch {
		case req.Replace:
			updated.Data = req.Data
			if updated.Data.IsNull() {
				updated.Data = value.Object(nil)
			}
		case !req.Data.IsNull():
			updated.Data = current.Data.Merge(req.Data)
		}

		if err := c.validate(ctx, tx, current.Collection, updated.Data); err != nil {
			return err
		}

		if req.Status != nil && *req.Status != "" {
			updated.Status = *req.Status
		}
		updated.IsDraft = updated.Status != model.StatusPublished
		if updated.Status == model.StatusPublished && updated.PublishedAt == nil {
			updated.PublishedAt = &now
		}
		updated.UpdatedAt = &now
		updated.LastModified = now
		updated.Version = current.Version + 1

		err = tx.UpdateContent(ctx, &updated, req.ExpectedVersion)
		if errors.Is(err, store.ErrStaleVersion) {
			latest, getErr := tx.GetContent(ctx, req.ID)
			if getErr != nil {
				return fmt.Errorf("%w: content %s", storeError(getErr, ErrNotFound), req.ID)
			}
			return &VersionConflictError{ItemID: req.ID, Expected: req.ExpectedVersion, Current: latest.Version}
		}
		if err != nil {
			return err
		}

		previous, next = current, &updated
		return nil
	})
	if err != nil {
		var conflict *VersionConflictError
		if errors.As(err, &conflict) {
			logrus.Warnf("content %s: %v", req.ID, err)
		}
		return nil, err
	}

	logrus.Infof("content %s updated to version %d", next.ID, next.Version)

	c.refreshCache(ctx, next)
	c.publish(ctx, queue.EventContentUpdated, next, req.Actor)
	switch {
	case !previous.IsPublished() && next.IsPublished():
		c.publish(ctx, queue.EventContentPublished, next, req.Actor)
	case previous.IsPublished() && !next.IsPublished():
		c.publish(ctx, queue.EventContentUnpublished, next, req.Actor)
	}

	return next, nil
}

// DeleteContent removes an item and its translations. Revisions are kept.
func (c *ContentService) DeleteContent(ctx context.Context, id string, actor string) error {
	var deleted *model.Content

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		// the row lock orders this delete with concurrent translation writes
		content, err := tx.GetContentForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: content %s", storeError(err, ErrNotFound), id)
		}

		if err := tx.DeleteItemTranslations(ctx, id); err != nil {
			return err
		}

		if err := tx.DeleteContent(ctx, id); err != nil {
			return fmt.Errorf("%w: content %s", storeError(err, ErrNotFound), id)
		}

		deleted = content
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("content %s deleted from %s", id, deleted.Collection)

	if err := c.cache.DeleteContent(ctx, id); err != nil {
		logrus.Errorf("failed to evict content %s from cache: %v", id, err)
	}
	c.publish(ctx, queue.EventContentDeleted, deleted, actor)

	return nil
}

// GetContent returns an item. For a language other than the default one, the
// item's translations for that language replace the matching payload keys.
func (c *ContentService) GetContent(ctx context.Context, id string, language string) (*model.Content, error) {
	content, err := c.cache.GetContent(ctx, id)
	if err != nil {
		logrus.Errorf("failed to read content %s from cache: %v", id, err)
		content = nil
	}

	if content == nil {
		content, err = c.store.GetContent(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: content %s", storeError(err, ErrNotFound), id)
		}
		c.refreshCache(ctx, content)
	}

	if language == "" || language == c.options.DefaultLanguage || !content.Data.IsObject() {
		return content, nil
	}

	translations, err := c.store.ListTranslations(ctx, id, language)
	if err != nil {
		return nil, err
	}

	localized := *content
	for _, t := range translations {
		if t.Value == nil {
			continue
		}
		localized.Data = localized.Data.With(t.Field, value.String(*t.Value))
	}

	return &localized, nil
}

// ListContent returns a page of a collection's items, most recently modified
// first, and the total number of matching items.
func (c *ContentService) ListContent(ctx context.Context, req ListContentRequest) ([]*model.Content, int64, error) {
	_, err := c.store.GetCollection(ctx, req.Collection)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", storeError(err, ErrUnknownCollection), req.Collection)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	return c.store.ListContent(ctx, store.ContentFilter{
		Collection: req.Collection,
		Status:     req.Status,
		Offset:     offset,
		Limit:      limit,
	})
}

// ListRevisions returns the revisions of an item, newest first. Revisions
// outlive their item.
func (c *ContentService) ListRevisions(ctx context.Context, id string) ([]*model.Revision, error) {
	return c.store.ListRevisions(ctx, id)
}

func (c *ContentService) GetRevision(ctx context.Context, id string) (*model.Revision, error) {
	revision, err := c.store.GetRevision(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: revision %s", storeError(err, ErrNotFound), id)
	}
	return revision, nil
}

// RestoreRevision writes a revision's payload and status back onto its item as
// a regular versioned update.
func (c *ContentService) RestoreRevision(ctx context.Context, req RestoreRevisionRequest) (*model.Content, error) {
	revision, err := c.GetRevision(ctx, req.RevisionID)
	if err != nil {
		return nil, err
	}

	status := revision.Status
	return c.UpdateContent(ctx, UpdateContentRequest{
		ID:              revision.ItemID,
		ExpectedVersion: req.ExpectedVersion,
		Data:            revision.Data,
		Replace:         true,
		Status:          &status,
		Actor:           req.Actor,
	})
}

func (c *ContentService) validate(ctx context.Context, tx store.Store, collection string, data value.Value) error {
	if !c.options.Strict {
		return nil
	}

	schema, err := resolveSchema(ctx, tx, collection)
	if err != nil {
		return err
	}

	return schema.Validate(data)
}

func (c *ContentService) refreshCache(ctx context.Context, content *model.Content) {
	if err := c.cache.SetContent(ctx, content); err != nil {
		logrus.Errorf("failed to cache content %s: %v", content.ID, err)
	}
}

func (c *ContentService) publish(ctx context.Context, kind string, content *model.Content, actor string) {
	event := &queue.Event{
		Type:       kind,
		ItemID:     content.ID,
		Collection: content.Collection,
		Version:    content.Version,
		Status:     content.Status,
		Actor:      actor,
		OccurredAt: c.now(),
	}

	if err := c.queue.Publish(ctx, event); err != nil {
		logrus.Errorf("failed to publish %s for content %s: %v", kind, content.ID, err)
	}
}
