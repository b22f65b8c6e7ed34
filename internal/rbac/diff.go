package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Diff lists the keys to insert and to delete to turn one set into another.
type Diff[K comparable] struct {
	ToAdd    []K
	ToRemove []K
}

// Empty reports whether applying the diff is a no-op.
func (d Diff[K]) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Compute returns desired minus current as ToAdd and current minus desired
// as ToRemove. Duplicates collapse; first-occurrence order is preserved.
func Compute[K comparable](current, desired []K) Diff[K] {
	have := make(map[K]struct{}, len(current))
	for _, k := range current {
		have[k] = struct{}{}
	}
	want := make(map[K]struct{}, len(desired))
	var d Diff[K]
	for _, k := range desired {
		if _, seen := want[k]; seen {
			continue
		}
		want[k] = struct{}{}
		if _, ok := have[k]; !ok {
			d.ToAdd = append(d.ToAdd, k)
		}
	}
	removed := make(map[K]struct{}, len(current))
	for _, k := range current {
		if _, keep := want[k]; keep {
			continue
		}
		if _, seen := removed[k]; seen {
			continue
		}
		removed[k] = struct{}{}
		d.ToRemove = append(d.ToRemove, k)
	}
	return d
}

// Reconcile is Compute except that an empty desired set means "leave as is".
// Clearing a set is therefore impossible through an update.
func Reconcile[K comparable](current, desired []K) Diff[K] {
	if len(desired) == 0 {
		return Diff[K]{}
	}
	return Compute(current, desired)
}

// Reconciler mutates a persisted relation.
type Reconciler[K comparable] interface {
	Remove(ctx context.Context, keys []K) error
	Add(ctx context.Context, keys []K) error
}

// PartialApplyError reports removals that succeeded before insertions failed.
type PartialApplyError[K comparable] struct {
	Removed  []K
	NotAdded []K
	Err      error
}

func (e *PartialApplyError[K]) Error() string {
	return fmt.Sprintf("rbac: removed %d entries but adding %d failed: %v", len(e.Removed), len(e.NotAdded), e.Err)
}

func (e *PartialApplyError[K]) Unwrap() error { return e.Err }

func (e *PartialApplyError[K]) Is(target error) bool { return target == shared.ErrPartialApply }

func (e *PartialApplyError[K]) rolledBack() error { return e.Err }

// Apply performs all removals, then all insertions. A removal failure
// returns the cause untouched; an insertion failure after removals is a
// *PartialApplyError.
func Apply[K comparable](ctx context.Context, target Reconciler[K], d Diff[K]) error {
	if len(d.ToRemove) > 0 {
		if err := target.Remove(ctx, d.ToRemove); err != nil {
			return err
		}
	}
	if len(d.ToAdd) == 0 {
		return nil
	}
	if err := target.Add(ctx, d.ToAdd); err != nil {
		if len(d.ToRemove) == 0 {
			return err
		}
		return &PartialApplyError[K]{Removed: d.ToRemove, NotAdded: d.ToAdd, Err: err}
	}
	return nil
}

// RolledBack strips the partial-apply classification from err once the
// surrounding transaction has discarded the removals.
func RolledBack(err error) error {
	var partial interface{ rolledBack() error }
	if errors.As(err, &partial) {
		return partial.rolledBack()
	}
	return err
}
