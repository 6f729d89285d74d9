// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package ordering maintains the dense order_number sequence shared by
chapters (within a course) and lessons (within a chapter).

For a fixed parent scope the active siblings must hold the order values
{1..N} with no duplicates: inserting into an occupied slot shifts the
tail of the sequence up, deleting a row renumbers the survivors back to
a dense sequence, and move operations swap a row with its rank neighbor.

# Architecture

The package is storage-agnostic. All reads and writes go through the
[Store] interface; the postgres repositories supply implementations that
are scoped to a single transaction holding a per-parent advisory lock,
so concurrent reorders of the same sibling set serialize instead of
interleaving their shift writes.

# Sparse placements

An explicit order with no current occupant is written as-is, even when it
exceeds N+1. The sequence may therefore be sparse after an explicit
placement until the next [Manager.Renumber] (which every delete runs).
*/
package ordering

import (
	"context"
	"sort"

	"github.com/loopspace/backend/internal/platform/apperr"
)

// Item is the minimal view of an orderable record.
type Item struct {
	ID    string
	Order int
}

// Store is the data access contract the manager drives.
//
// Implementations are expected to be scoped to the entity kind (lesson or
// chapter) and, for mutating call sequences, to a single transaction.
type Store interface {

	/*
		ListByParent returns all active siblings in a parent scope,
		sorted ascending by order number.

		Parameters:
		  - context: context.Context
		  - parentID: string (Scope ID)

		Returns:
		  - []Item: Sibling set (empty slice when the scope is empty)
		  - error: Storage failures
	*/
	ListByParent(context context.Context, parentID string) ([]Item, error)

	/*
		FindByParentAndOrder returns the sibling currently holding an
		order slot, or nil when the slot is vacant.

		Parameters:
		  - context: context.Context
		  - parentID: string (Scope ID)
		  - order: int (Slot to probe)

		Returns:
		  - *Item: Occupant, or nil
		  - error: Storage failures
	*/
	FindByParentAndOrder(context context.Context, parentID string, order int) (*Item, error)

	/*
		UpdateOrder rewrites a single sibling's order number.

		Parameters:
		  - context: context.Context
		  - id: string (Item ID)
		  - order: int (New slot)

		Returns:
		  - error: Storage failures
	*/
	UpdateOrder(context context.Context, id string, order int) error
}

// errInvalidOrder is returned for zero or negative explicit order numbers.
func errInvalidOrder() error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   "order_number",
		Message: "Must be a positive integer",
	})
}

// Manager assigns, validates, and repairs the order sequence for one
// parent-scoped sibling set.
//
// # Concurrency
//
// Manager itself holds no state; safety under concurrent mutation comes
// from the transactional [Store] it is constructed with.
type Manager struct {
	store Store
}

// NewManager constructs a [Manager] over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// # Placement

/*
NextOrder returns the order number a plain append would receive:
max(sibling orders) + 1, or 1 for an empty scope.

Pure read, no side effects.
*/
func (manager *Manager) NextOrder(context context.Context, parentID string) (int, error) {
	siblings, err := manager.store.ListByParent(context, parentID)
	if err != nil {
		return 0, err
	}

	if len(siblings) == 0 {
		return 1, nil
	}

	// Siblings arrive sorted ascending, so the tail holds the maximum.
	return siblings[len(siblings)-1].Order + 1, nil
}

/*
PlaceNew prepares an order slot for a row about to be inserted.

Description: With desired == 0 the item is appended after the current
maximum. An explicit desired order that collides with a sibling shifts
every sibling at or above it up by one, processed in descending order so
no two rows ever transiently share a slot. An explicit vacant order is
used as-is (see the package note on sparse placements).

Parameters:
  - context: context.Context
  - parentID: string (Scope ID)
  - desired: int (Explicit order, or 0 to append)

Returns:
  - int: The order number the caller must insert the new row with
  - error: Validation or storage errors
*/
func (manager *Manager) PlaceNew(context context.Context, parentID string, desired int) (int, error) {
	if desired == 0 {
		return manager.NextOrder(context, parentID)
	}

	if desired < 0 {
		return 0, errInvalidOrder()
	}

	occupant, err := manager.store.FindByParentAndOrder(context, parentID, desired)
	if err != nil {
		return 0, err
	}

	// Vacant slot: take it without touching the siblings.
	if occupant == nil {
		return desired, nil
	}

	if err := manager.shiftUpFrom(context, parentID, desired, ""); err != nil {
		return 0, err
	}

	return desired, nil
}

/*
PlaceExisting prepares an order slot for a row that is being moved.

Description: Mirrors [Manager.PlaceNew] for updates. The moving item is
excluded from the shift so it never displaces itself; if the target slot
is vacant or held by the item already, nothing is written.

Parameters:
  - context: context.Context
  - itemID: string (The row being repositioned)
  - parentID: string (Scope ID)
  - newOrder: int (Target slot)

Returns:
  - error: Validation or storage errors
*/
func (manager *Manager) PlaceExisting(context context.Context, itemID, parentID string, newOrder int) error {
	if newOrder <= 0 {
		return errInvalidOrder()
	}

	occupant, err := manager.store.FindByParentAndOrder(context, parentID, newOrder)
	if err != nil {
		return err
	}

	if occupant == nil || occupant.ID == itemID {
		return nil
	}

	return manager.shiftUpFrom(context, parentID, newOrder, itemID)
}

// shiftUpFrom increments the order of every sibling holding order >= from,
// excluding excludeID. Rows are processed in descending order so the
// uniqueness invariant holds between individual writes.
func (manager *Manager) shiftUpFrom(context context.Context, parentID string, from int, excludeID string) error {
	siblings, err := manager.store.ListByParent(context, parentID)
	if err != nil {
		return err
	}

	var toShift []Item
	for _, sibling := range siblings {
		if sibling.Order >= from && sibling.ID != excludeID {
			toShift = append(toShift, sibling)
		}
	}

	// Highest order first.
	sort.Slice(toShift, func(i, j int) bool { return toShift[i].Order > toShift[j].Order })

	for _, sibling := range toShift {
		if err := manager.store.UpdateOrder(context, sibling.ID, sibling.Order+1); err != nil {
			return err
		}
	}

	return nil
}

// # Repair

/*
Renumber rewrites every sibling's order number to its 1-based rank,
restoring the dense {1..N} sequence after a delete (or after a failed
shift left the scope inconsistent).

Description: Only rows whose stored order differs from their computed
rank are written, so re-running Renumber on an already dense scope
performs zero writes. Relative ordering among survivors is preserved.

Parameters:
  - context: context.Context
  - parentID: string (Scope ID)

Returns:
  - int: Number of rows rewritten
  - error: Storage failures
*/
func (manager *Manager) Renumber(context context.Context, parentID string) (int, error) {
	siblings, err := manager.store.ListByParent(context, parentID)
	if err != nil {
		return 0, err
	}

	writes := 0
	for index, sibling := range siblings {
		rank := index + 1
		if sibling.Order == rank {
			continue
		}
		if err := manager.store.UpdateOrder(context, sibling.ID, rank); err != nil {
			return writes, err
		}
		writes++
	}

	return writes, nil
}

// # Neighbor Swaps

/*
MoveUp swaps an item with the sibling ranked immediately before it.
The first-ranked item is a no-op.

Parameters:
  - context: context.Context
  - itemID: string
  - parentID: string (Scope ID)

Returns:
  - error: apperr.NotFound when the item is not in the scope
*/
func (manager *Manager) MoveUp(context context.Context, itemID, parentID string) error {
	return manager.swapWithNeighbor(context, itemID, parentID, -1)
}

/*
MoveDown swaps an item with the sibling ranked immediately after it.
The last-ranked item is a no-op.

Parameters:
  - context: context.Context
  - itemID: string
  - parentID: string (Scope ID)

Returns:
  - error: apperr.NotFound when the item is not in the scope
*/
func (manager *Manager) MoveDown(context context.Context, itemID, parentID string) error {
	return manager.swapWithNeighbor(context, itemID, parentID, +1)
}

// swapWithNeighbor exchanges order numbers with the rank neighbor in the
// given direction. Boundary positions return nil without writing.
func (manager *Manager) swapWithNeighbor(context context.Context, itemID, parentID string, direction int) error {
	siblings, err := manager.store.ListByParent(context, parentID)
	if err != nil {
		return err
	}

	position := -1
	for index, sibling := range siblings {
		if sibling.ID == itemID {
			position = index
			break
		}
	}

	if position == -1 {
		return apperr.NotFound("Item")
	}

	neighborPosition := position + direction
	if neighborPosition < 0 || neighborPosition >= len(siblings) {
		return nil
	}

	current := siblings[position]
	neighbor := siblings[neighborPosition]

	// The surrounding transaction defers the uniqueness constraint, so the
	// two writes of a swap never observe each other half-applied.
	if err := manager.store.UpdateOrder(context, current.ID, neighbor.Order); err != nil {
		return err
	}
	if err := manager.store.UpdateOrder(context, neighbor.ID, current.Order); err != nil {
		return err
	}

	return nil
}
