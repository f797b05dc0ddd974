package service

import (
	"context"
	"fmt"

	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type InsertNodeRequest struct {
	Label    string
	Path     string
	ParentID *string
	Order    int
	// Visible defaults to true.
	Visible *bool
}

type MoveNodeRequest struct {
	ID       string
	ParentID *string
	// Order is kept when nil.
	Order *int
}

// NavigationService manages the menu tree. Siblings are shown by order, then label.
type NavigationService struct {
	store store.Store
	now   Clock
}

func NewNavigationService(store store.Store) *NavigationService {
	return &NavigationService{store: store, now: systemClock}
}

func (n *NavigationService) WithClock(clock Clock) *NavigationService {
	n.now = clock
	return n
}

func (n *NavigationService) InsertNode(ctx context.Context, req InsertNodeRequest) (*model.Navigation, error) {
	if req.Label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrInvalidValue)
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	node := &model.Navigation{
		ID:        uuid.New().String(),
		Label:     req.Label,
		Path:      req.Path,
		ParentID:  req.ParentID,
		Order:     req.Order,
		Visible:   visible,
		CreatedAt: n.now(),
	}

	err := n.store.Transaction(ctx, func(tx store.Store) error {
		if req.ParentID != nil {
			if _, err := tx.GetNavigation(ctx, *req.ParentID); err != nil {
				return fmt.Errorf("%w: parent node %s", storeError(err, ErrNotFound), *req.ParentID)
			}
		}
		return tx.CreateNavigation(ctx, node)
	})
	if err != nil {
		return nil, err
	}

	logrus.Debugf("navigation node %s inserted", node.Label)
	return node, nil
}

// MoveNode re-parents a node and optionally changes its order.
func (n *NavigationService) MoveNode(ctx context.Context, req MoveNodeRequest) (*model.Navigation, error) {
	var moved *model.Navigation

	err := n.store.Transaction(ctx, func(tx store.Store) error {
		node, err := tx.GetNavigation(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("%w: node %s", storeError(err, ErrNotFound), req.ID)
		}

		if req.ParentID != nil {
			if _, err := tx.GetNavigation(ctx, *req.ParentID); err != nil {
				return fmt.Errorf("%w: parent node %s", storeError(err, ErrNotFound), *req.ParentID)
			}
		}

		err = checkCycle(ctx, req.ID, req.ParentID, func(ctx context.Context, id string) (*string, error) {
			ancestor, err := tx.GetNavigation(ctx, id)
			if err != nil {
				return nil, storeError(err, ErrNotFound)
			}
			return ancestor.ParentID, nil
		})
		if err != nil {
			return err
		}

		node.ParentID = req.ParentID
		if req.Order != nil {
			node.Order = *req.Order
		}

		if err := tx.UpdateNavigation(ctx, node); err != nil {
			return storeError(err, ErrNotFound)
		}

		moved = node
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// ListChildren returns the children of a node, the roots when parentID is nil.
func (n *NavigationService) ListChildren(ctx context.Context, parentID *string) ([]*model.Navigation, error) {
	if parentID != nil {
		if _, err := n.store.GetNavigation(ctx, *parentID); err != nil {
			return nil, fmt.Errorf("%w: node %s", storeError(err, ErrNotFound), *parentID)
		}
	}
	return n.store.ListNavigationChildren(ctx, parentID)
}

// DeleteNode deletes a node. A node with children is only deleted with
// cascade, which removes its whole subtree.
func (n *NavigationService) DeleteNode(ctx context.Context, id string, cascade bool) (int, error) {
	var deleted int

	err := n.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetNavigation(ctx, id); err != nil {
			return fmt.Errorf("%w: node %s", storeError(err, ErrNotFound), id)
		}

		children, err := tx.ListNavigationChildren(ctx, &id)
		if err != nil {
			return err
		}
		if len(children) > 0 && !cascade {
			return fmt.Errorf("%w: node %s has %d children", ErrHasChildren, id, len(children))
		}

		ids, err := collectSubtree(ctx, id, func(ctx context.Context, id string) ([]string, error) {
			nodes, err := tx.ListNavigationChildren(ctx, &id)
			if err != nil {
				return nil, err
			}
			out := make([]string, len(nodes))
			for i, node := range nodes {
				out[i] = node.ID
			}
			return out, nil
		})
		if err != nil {
			return err
		}

		deleted = len(ids)
		return tx.DeleteNavigation(ctx, ids)
	})
	if err != nil {
		return 0, err
	}

	logrus.Infof("navigation node %s deleted with %d descendants", id, deleted-1)
	return deleted, nil
}

// Tree returns the whole menu as nested root nodes. Hidden nodes are left out
// together with their subtree unless includeHidden is set.
func (n *NavigationService) Tree(ctx context.Context, includeHidden bool) ([]*model.Navigation, error) {
	nodes, err := n.store.ListNavigation(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Navigation, len(nodes))
	for _, node := range nodes {
		node.Children = nil
		byID[node.ID] = node
	}

	roots := make([]*model.Navigation, 0)
	// nodes are already in display order, appending keeps siblings sorted
	for _, node := range nodes {
		if !node.Visible && !includeHidden {
			continue
		}
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*node.ParentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
