// Package renewal decides which subscriptions receive an order in a given
// delivery cycle. The decision function is pure and repeatable: the batch
// caller may run it any number of times, and idempotency of order creation
// belongs to the unique constraint on the orders table, not to this package.
package renewal

import (
	"sort"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
)

// SeasonalGapCycles is the number of cycles a seasonal subscription waits
// between deliveries. The gap is counted in cycle units by date-ordered
// position, not calendar months, so irregular cycle scheduling does not
// shift seasonal cadence.
const SeasonalGapCycles = 3

// ShouldIncludeInCycle reports whether the subscription should produce an
// order for the target cycle. cycles is the full reference set; it is
// defensively re-sorted by delivery date so callers do not have to guarantee
// ordering.
//
// Missing-reference cases fail open: if the subscription's first or
// last-delivered cycle can no longer be found in the reference set (deleted
// or archived out), the subscription is included rather than silently
// starved of a delivery.
func ShouldIncludeInCycle(sub *model.Subscription, target *model.DeliveryCycle, cycles []model.DeliveryCycle) bool {
	if sub == nil || target == nil {
		return false
	}
	if sub.Status != model.StatusActive {
		return false
	}

	switch sub.Frequency {
	case model.FrequencyMonthly:
		// Every monthly subscriber gets every cycle.
		return true
	case model.FrequencySeasonal:
		return includeSeasonal(sub, target, sortedByDate(cycles))
	default:
		// Unknown frequency values exclude rather than guess.
		return false
	}
}

func includeSeasonal(sub *model.Subscription, target *model.DeliveryCycle, sorted []model.DeliveryCycle) bool {
	if sub.LastDeliveredCycleID == nil {
		// Never delivered yet: gate on the configured first cycle, if any.
		if sub.FirstCycleID == nil {
			return true
		}
		first := findByID(sorted, *sub.FirstCycleID)
		if first == nil {
			// First cycle no longer in the reference set: fail open.
			return true
		}
		return !target.DeliveryDate.Before(first.DeliveryDate)
	}

	last := findByID(sorted, *sub.LastDeliveredCycleID)
	if last == nil {
		// Last-delivered cycle no longer in the reference set: fail open.
		return true
	}

	// Count cycles strictly after the last delivery, up to and including
	// the target. Date comparison keeps the count stable when cycles are
	// removed from the list between deliveries.
	gap := 0
	for i := range sorted {
		c := &sorted[i]
		if c.DeliveryDate.After(last.DeliveryDate) && !c.DeliveryDate.After(target.DeliveryDate) {
			gap++
		}
	}
	return gap >= SeasonalGapCycles
}

// sortedByDate returns a copy of cycles sorted ascending by delivery date.
func sortedByDate(cycles []model.DeliveryCycle) []model.DeliveryCycle {
	sorted := make([]model.DeliveryCycle, len(cycles))
	copy(sorted, cycles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DeliveryDate.Before(sorted[j].DeliveryDate)
	})
	return sorted
}

func findByID(cycles []model.DeliveryCycle, id uuid.UUID) *model.DeliveryCycle {
	for i := range cycles {
		if cycles[i].ID == id {
			return &cycles[i]
		}
	}
	return nil
}
