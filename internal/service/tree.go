package service

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// parentFunc returns the parent id of a node, nil for a root.
type parentFunc func(ctx context.Context, id string) (*string, error)

// childrenFunc returns the ids of the direct children of a node.
type childrenFunc func(ctx context.Context, id string) ([]string, error)

// checkCycle walks the ancestors of parentID by id. Reaching id means the move
// would put the node under itself. A loop that never reaches id means the
// stored tree is already broken and is reported the same way.
func checkCycle(ctx context.Context, id string, parentID *string, parentOf parentFunc) error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for cur := parentID; cur != nil; {
		if *cur == id {
			return fmt.Errorf("%w: %s cannot move under its own subtree", ErrCycle, id)
		}
		if !seen.Add(*cur) {
			return fmt.Errorf("%w: ancestor loop at %s", ErrCycle, *cur)
		}

		next, err := parentOf(ctx, *cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// collectSubtree returns root and all of its descendants, parents before children.
func collectSubtree(ctx context.Context, root string, childrenOf childrenFunc) ([]string, error) {
	seen := mapset.NewThreadUnsafeSet(root)
	ids := []string{root}

	for i := 0; i < len(ids); i++ {
		children, err := childrenOf(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen.Add(child) {
				ids = append(ids, child)
			}
		}
	}

	return ids, nil
}
