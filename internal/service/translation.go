package service

import (
	"context"
	"fmt"

	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SetTranslationRequest struct {
	ItemID   string
	Field    string
	Language string
	// Value nil stores an explicit "no translation", reads fall back to the base value.
	Value *string
}

// TranslationService manages per-language overrides of content fields.
type TranslationService struct {
	store  store.Store
	strict bool
}

func NewTranslationService(store store.Store, strict bool) *TranslationService {
	return &TranslationService{store: store, strict: strict}
}

// SetTranslation creates or replaces the translation of one field of an item.
func (t *TranslationService) SetTranslation(ctx context.Context, req SetTranslationRequest) (*model.Translation, error) {
	if req.Field == "" || req.Language == "" {
		return nil, fmt.Errorf("%w: field and language are required", ErrInvalidValue)
	}

	translation := &model.Translation{
		ID:       uuid.New().String(),
		ItemID:   req.ItemID,
		Field:    req.Field,
		Language: req.Language,
		Value:    req.Value,
	}

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		content, err := tx.GetContentForUpdate(ctx, req.ItemID)
		if err != nil {
			return fmt.Errorf("%w: content %s", storeError(err, ErrNotFound), req.ItemID)
		}
		translation.Collection = content.Collection

		if t.strict {
			schema, err := resolveSchema(ctx, tx, content.Collection)
			if err != nil {
				return err
			}
			if _, ok := schema.Field(req.Field); !ok {
				return fmt.Errorf("%w: %s has no field %s", ErrUnknownField, content.Collection, req.Field)
			}
		}

		if err := tx.UpsertTranslation(ctx, translation); err != nil {
			return err
		}

		// an upsert onto an existing key keeps the stored id
		stored, err := tx.GetTranslation(ctx, req.ItemID, req.Field, req.Language)
		if err != nil {
			return err
		}
		translation = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Debugf("translation %s/%s set on %s", req.Field, req.Language, req.ItemID)
	return translation, nil
}

func (t *TranslationService) DeleteTranslation(ctx context.Context, itemID, field, language string) error {
	err := t.store.DeleteTranslation(ctx, itemID, field, language)
	if err != nil {
		return fmt.Errorf("%w: translation %s/%s of %s", storeError(err, ErrNotFound), field, language, itemID)
	}
	return nil
}

// ListTranslations lists an item's translations, every language when language is empty.
func (t *TranslationService) ListTranslations(ctx context.Context, itemID, language string) ([]*model.Translation, error) {
	return t.store.ListTranslations(ctx, itemID, language)
}
