package service

import (
	"context"
	"fmt"

	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type InsertTermRequest struct {
	Vocabulary string
	Term       string
	ParentID   *string
}

// TaxonomyService manages vocabularies of hierarchical terms. Siblings keep
// their insertion order.
type TaxonomyService struct {
	store store.Store
	now   Clock
}

func NewTaxonomyService(store store.Store) *TaxonomyService {
	return &TaxonomyService{store: store, now: systemClock}
}

func (t *TaxonomyService) WithClock(clock Clock) *TaxonomyService {
	t.now = clock
	return t
}

func (t *TaxonomyService) InsertTerm(ctx context.Context, req InsertTermRequest) (*model.Taxonomy, error) {
	if req.Vocabulary == "" || req.Term == "" {
		return nil, fmt.Errorf("%w: vocabulary and term are required", ErrInvalidValue)
	}

	term := &model.Taxonomy{
		ID:         uuid.New().String(),
		Vocabulary: req.Vocabulary,
		Term:       req.Term,
		ParentID:   req.ParentID,
		CreatedAt:  t.now(),
	}

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		if err := checkTermParent(ctx, tx, req.Vocabulary, req.ParentID); err != nil {
			return err
		}

		position, err := tx.NextTermPosition(ctx, req.Vocabulary, req.ParentID)
		if err != nil {
			return err
		}
		term.Position = position

		return tx.CreateTerm(ctx, term)
	})
	if err != nil {
		return nil, err
	}

	logrus.Debugf("term %s inserted into %s", term.Term, term.Vocabulary)
	return term, nil
}

// MoveTerm re-parents a term, nil parentID makes it a root. The term goes last
// among its new siblings.
func (t *TaxonomyService) MoveTerm(ctx context.Context, id string, parentID *string) (*model.Taxonomy, error) {
	var moved *model.Taxonomy

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		term, err := tx.GetTerm(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: term %s", storeError(err, ErrNotFound), id)
		}

		if err := checkTermParent(ctx, tx, term.Vocabulary, parentID); err != nil {
			return err
		}

		err = checkCycle(ctx, id, parentID, func(ctx context.Context, id string) (*string, error) {
			ancestor, err := tx.GetTerm(ctx, id)
			if err != nil {
				return nil, storeError(err, ErrNotFound)
			}
			return ancestor.ParentID, nil
		})
		if err != nil {
			return err
		}

		position, err := tx.NextTermPosition(ctx, term.Vocabulary, parentID)
		if err != nil {
			return err
		}

		if err := tx.UpdateTermParent(ctx, id, parentID, position); err != nil {
			return storeError(err, ErrNotFound)
		}

		term.ParentID = parentID
		term.Position = position
		moved = term
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// ListChildren returns the direct children of a term in insertion order.
func (t *TaxonomyService) ListChildren(ctx context.Context, id string) ([]*model.Taxonomy, error) {
	if _, err := t.store.GetTerm(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: term %s", storeError(err, ErrNotFound), id)
	}
	return t.store.ListTermChildren(ctx, id)
}

// ListRoots returns the top level terms of a vocabulary.
func (t *TaxonomyService) ListRoots(ctx context.Context, vocabulary string) ([]*model.Taxonomy, error) {
	return t.store.ListTerms(ctx, vocabulary, nil)
}

// DeleteTerm deletes a term. A term with children is only deleted with
// cascade, which removes its whole subtree.
func (t *TaxonomyService) DeleteTerm(ctx context.Context, id string, cascade bool) (int, error) {
	var deleted int

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetTerm(ctx, id); err != nil {
			return fmt.Errorf("%w: term %s", storeError(err, ErrNotFound), id)
		}

		children, err := tx.ListTermChildren(ctx, id)
		if err != nil {
			return err
		}
		if len(children) > 0 && !cascade {
			return fmt.Errorf("%w: term %s has %d children", ErrHasChildren, id, len(children))
		}

		ids, err := collectSubtree(ctx, id, func(ctx context.Context, id string) ([]string, error) {
			terms, err := tx.ListTermChildren(ctx, id)
			if err != nil {
				return nil, err
			}
			out := make([]string, len(terms))
			for i, term := range terms {
				out[i] = term.ID
			}
			return out, nil
		})
		if err != nil {
			return err
		}

		deleted = len(ids)
		return tx.DeleteTerms(ctx, ids)
	})
	if err != nil {
		return 0, err
	}

	logrus.Infof("term %s deleted with %d descendants", id, deleted-1)
	return deleted, nil
}

func checkTermParent(ctx context.Context, tx store.Store, vocabulary string, parentID *string) error {
	if parentID == nil {
		return nil
	}

	parent, err := tx.GetTerm(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("%w: parent term %s", storeError(err, ErrNotFound), *parentID)
	}
	if parent.Vocabulary != vocabulary {
		return fmt.Errorf("%w: %s is in %s, not %s", ErrVocabularyMismatch, parent.ID, parent.Vocabulary, vocabulary)
	}
	return nil
}
