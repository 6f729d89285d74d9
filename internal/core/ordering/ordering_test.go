// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package ordering_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/core/ordering"
	"github.com/loopspace/backend/internal/platform/apperr"
)

// memStore is an in-memory [ordering.Store] used to drive the manager
// without a database.
type memStore struct {
	byParent map[string][]ordering.Item

	// writes counts UpdateOrder calls, for idempotence assertions.
	writes int
}

func newMemStore() *memStore {
	return &memStore{byParent: make(map[string][]ordering.Item)}
}

func (store *memStore) add(parentID, id string, order int) {
	store.byParent[parentID] = append(store.byParent[parentID], ordering.Item{ID: id, Order: order})
}

func (store *memStore) remove(parentID, id string) {
	siblings := store.byParent[parentID]
	for index, item := range siblings {
		if item.ID == id {
			store.byParent[parentID] = append(siblings[:index], siblings[index+1:]...)
			return
		}
	}
}

func (store *memStore) ListByParent(_ context.Context, parentID string) ([]ordering.Item, error) {
	siblings := append([]ordering.Item(nil), store.byParent[parentID]...)
	sort.Slice(siblings, func(i, j int) bool { return siblings[i].Order < siblings[j].Order })
	return siblings, nil
}

func (store *memStore) FindByParentAndOrder(_ context.Context, parentID string, order int) (*ordering.Item, error) {
	for _, item := range store.byParent[parentID] {
		if item.Order == order {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (store *memStore) UpdateOrder(_ context.Context, id string, order int) error {
	for parentID, siblings := range store.byParent {
		for index, item := range siblings {
			if item.ID == id {
				store.byParent[parentID][index].Order = order
				store.writes++
				return nil
			}
		}
	}
	return apperr.NotFound("Item")
}

// orders returns the current (id → order) layout of a parent scope,
// ascending by order.
func orders(t *testing.T, store *memStore, parentID string) []ordering.Item {
	t.Helper()
	items, err := store.ListByParent(context.Background(), parentID)
	require.NoError(t, err)
	return items
}

// assertUnique fails when two siblings share an order number.
func assertUnique(t *testing.T, store *memStore, parentID string) {
	t.Helper()
	seen := make(map[int]string)
	for _, item := range store.byParent[parentID] {
		if holder, duplicated := seen[item.Order]; duplicated {
			t.Fatalf("order %d held by both %s and %s", item.Order, holder, item.ID)
		}
		seen[item.Order] = item.ID
	}
}

// assertDense fails unless the scope holds exactly {1..N}.
func assertDense(t *testing.T, store *memStore, parentID string) {
	t.Helper()
	items := orders(t, store, parentID)
	for index, item := range items {
		assert.Equal(t, index+1, item.Order, "item %s out of dense sequence", item.ID)
	}
}

// insertVia runs the placement half of an insert and then adds the row,
// the way the repositories do inside their transactions.
func insertVia(t *testing.T, store *memStore, manager *ordering.Manager, parentID, id string, desired int) int {
	t.Helper()
	assigned, err := manager.PlaceNew(context.Background(), parentID, desired)
	require.NoError(t, err)
	store.add(parentID, id, assigned)
	return assigned
}

func TestManager_NextOrder(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{"empty_scope", nil, 1},
		{"dense_sequence", []int{1, 2, 3}, 4},
		{"sparse_sequence", []int{2, 5}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			for i, order := range tt.existing {
				store.add("chapter-1", string(rune('a'+i)), order)
			}
			manager := ordering.NewManager(store)

			next, err := manager.NextOrder(context.Background(), "chapter-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestManager_PlaceNew_AppendsIntoEmptyScope(t *testing.T) {
	store := newMemStore()
	manager := ordering.NewManager(store)

	assigned := insertVia(t, store, manager, "chapter-1", "lesson-a", 0)

	assert.Equal(t, 1, assigned)
	assertDense(t, store, "chapter-1")
}

func TestManager_PlaceNew_ShiftsCollidingSiblings(t *testing.T) {
	store := newMemStore()
	store.add("chapter-1", "a", 1)
	store.add("chapter-1", "b", 2)
	store.add("chapter-1", "c", 3)
	manager := ordering.NewManager(store)

	assigned := insertVia(t, store, manager, "chapter-1", "d", 2)

	require.Equal(t, 2, assigned)
	assertUnique(t, store, "chapter-1")
	assertDense(t, store, "chapter-1")

	items := orders(t, store, "chapter-1")
	wantIDs := []string{"a", "d", "b", "c"}
	for index, item := range items {
		assert.Equal(t, wantIDs[index], item.ID)
	}
}

func TestManager_PlaceNew_VacantExplicitOrderIsKept(t *testing.T) {
	store := newMemStore()
	store.add("chapter-1", "a", 1)
	store.add("chapter-1", "b", 2)
	manager := ordering.NewManager(store)

	// Beyond N+1: placement is sparse by contract, no sibling moves.
	assigned := insertVia(t, store, manager, "chapter-1", "c", 10)

	assert.Equal(t, 10, assigned)
	assert.Zero(t, store.writes)
	assertUnique(t, store, "chapter-1")
}

func TestManager_PlaceNew_RejectsNegativeOrder(t *testing.T) {
	manager := ordering.NewManager(newMemStore())

	_, err := manager.PlaceNew(context.Background(), "chapter-1", -3)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestManager_PlaceExisting(t *testing.T) {
	t.Run("collision_shifts_excluding_mover", func(t *testing.T) {
		store := newMemStore()
		store.add("chapter-1", "a", 1)
		store.add("chapter-1", "b", 2)
		store.add("chapter-1", "c", 3)
		manager := ordering.NewManager(store)

		// Move c onto slot 1: a and b shift up, c's own row is written by
		// the caller afterwards.
		require.NoError(t, manager.PlaceExisting(context.Background(), "c", "chapter-1", 1))
		require.NoError(t, store.UpdateOrder(context.Background(), "c", 1))

		assertUnique(t, store, "chapter-1")
		items := orders(t, store, "chapter-1")
		wantIDs := []string{"c", "a", "b"}
		for index, item := range items {
			assert.Equal(t, wantIDs[index], item.ID)
		}
	})

	t.Run("own_slot_is_noop", func(t *testing.T) {
		store := newMemStore()
		store.add("chapter-1", "a", 1)
		manager := ordering.NewManager(store)

		require.NoError(t, manager.PlaceExisting(context.Background(), "a", "chapter-1", 1))
		assert.Zero(t, store.writes)
	})

	t.Run("non_positive_order_rejected", func(t *testing.T) {
		manager := ordering.NewManager(newMemStore())

		err := manager.PlaceExisting(context.Background(), "a", "chapter-1", 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestManager_Renumber_RestoresDensityAfterDelete(t *testing.T) {
	store := newMemStore()
	store.add("chapter-1", "a", 1)
	store.add("chapter-1", "b", 2)
	store.add("chapter-1", "c", 3)
	manager := ordering.NewManager(store)

	// Delete the middle sibling, then repair.
	store.remove("chapter-1", "b")
	writes, err := manager.Renumber(context.Background(), "chapter-1")
	require.NoError(t, err)

	// Only c needed rewriting: a keeps rank 1, c drops from 3 to 2.
	assert.Equal(t, 1, writes)
	assertDense(t, store, "chapter-1")

	items := orders(t, store, "chapter-1")
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
}

func TestManager_Renumber_SecondPassWritesNothing(t *testing.T) {
	store := newMemStore()
	store.add("chapter-1", "a", 4)
	store.add("chapter-1", "b", 7)
	store.add("chapter-1", "c", 9)
	manager := ordering.NewManager(store)

	_, err := manager.Renumber(context.Background(), "chapter-1")
	require.NoError(t, err)
	assertDense(t, store, "chapter-1")

	store.writes = 0
	writes, err := manager.Renumber(context.Background(), "chapter-1")
	require.NoError(t, err)
	assert.Zero(t, writes)
	assert.Zero(t, store.writes)
}

func TestManager_MoveUp(t *testing.T) {
	store := newMemStore()
	store.add("course-1", "a", 1)
	store.add("course-1", "b", 2)
	store.add("course-1", "c", 3)
	manager := ordering.NewManager(store)

	require.NoError(t, manager.MoveUp(context.Background(), "c", "course-1"))

	items := orders(t, store, "course-1")
	wantIDs := []string{"a", "c", "b"}
	for index, item := range items {
		assert.Equal(t, wantIDs[index], item.ID)
	}
	assertDense(t, store, "course-1")
}

func TestManager_MoveBoundariesAreNoops(t *testing.T) {
	store := newMemStore()
	store.add("course-1", "a", 1)
	manager := ordering.NewManager(store)

	require.NoError(t, manager.MoveUp(context.Background(), "a", "course-1"))
	require.NoError(t, manager.MoveDown(context.Background(), "a", "course-1"))

	assert.Zero(t, store.writes)
	items := orders(t, store, "course-1")
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Order)
}

func TestManager_Move_UnknownItem(t *testing.T) {
	store := newMemStore()
	store.add("course-1", "a", 1)
	manager := ordering.NewManager(store)

	err := manager.MoveUp(context.Background(), "ghost", "course-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// TestManager_InvariantsAcrossOperationSequence walks a scripted mix of
// appends, explicit inserts, deletes, and moves, checking the uniqueness
// invariant after every step and density after every repair.
func TestManager_InvariantsAcrossOperationSequence(t *testing.T) {
	store := newMemStore()
	manager := ordering.NewManager(store)
	ctx := context.Background()
	parentID := "chapter-42"

	insertVia(t, store, manager, parentID, "l1", 0)
	insertVia(t, store, manager, parentID, "l2", 0)
	insertVia(t, store, manager, parentID, "l3", 1) // shifts l1, l2
	assertUnique(t, store, parentID)
	assertDense(t, store, parentID)

	require.NoError(t, manager.MoveDown(ctx, "l3", parentID))
	assertUnique(t, store, parentID)

	store.remove(parentID, "l1")
	_, err := manager.Renumber(ctx, parentID)
	require.NoError(t, err)
	assertUnique(t, store, parentID)
	assertDense(t, store, parentID)

	insertVia(t, store, manager, parentID, "l4", 2)
	assertUnique(t, store, parentID)
	assertDense(t, store, parentID)

	items := orders(t, store, parentID)
	require.Len(t, items, 3)
}
