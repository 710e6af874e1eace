package renewal

import (
	"testing"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cycleOn(year int, month time.Month, day int) model.DeliveryCycle {
	return model.DeliveryCycle{
		ID:           uuid.New(),
		DeliveryDate: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Status:       model.CycleUpcoming,
	}
}

func activeSub(freq model.Frequency) *model.Subscription {
	return &model.Subscription{
		ID:        uuid.New(),
		Status:    model.StatusActive,
		Frequency: freq,
	}
}

func TestShouldIncludeInCycle_NonActiveNeverIncluded(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1), cycleOn(2026, 2, 1)}
	target := &cycles[1]

	for _, status := range []model.SubscriptionStatus{
		model.StatusPaused, model.StatusCancelled, model.StatusExpired, "unknown",
	} {
		for _, freq := range []model.Frequency{model.FrequencyMonthly, model.FrequencySeasonal} {
			sub := activeSub(freq)
			sub.Status = status
			assert.False(t, ShouldIncludeInCycle(sub, target, cycles),
				"status %s frequency %s must be excluded", status, freq)
		}
	}
}

func TestShouldIncludeInCycle_MonthlyAlwaysIncluded(t *testing.T) {
	cycles := []model.DeliveryCycle{
		cycleOn(2026, 1, 1), cycleOn(2026, 2, 1), cycleOn(2026, 3, 1),
	}
	sub := activeSub(model.FrequencyMonthly)

	for i := range cycles {
		assert.True(t, ShouldIncludeInCycle(sub, &cycles[i], cycles))
	}
}

func TestShouldIncludeInCycle_UnknownFrequencyExcluded(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1)}
	sub := activeSub("weekly")

	assert.False(t, ShouldIncludeInCycle(sub, &cycles[0], cycles))
}

func TestShouldIncludeInCycle_SeasonalFirstCycleGate(t *testing.T) {
	cycles := []model.DeliveryCycle{
		cycleOn(2026, 1, 1), cycleOn(2026, 2, 1), cycleOn(2026, 3, 1), cycleOn(2026, 4, 1),
	}
	firstCycle := cycles[2] // dated 2026-03-01

	sub := activeSub(model.FrequencySeasonal)
	sub.FirstCycleID = &firstCycle.ID

	// Cycles dated before the first cycle are excluded.
	assert.False(t, ShouldIncludeInCycle(sub, &cycles[0], cycles))
	assert.False(t, ShouldIncludeInCycle(sub, &cycles[1], cycles))

	// At or after the first-cycle date they are included.
	assert.True(t, ShouldIncludeInCycle(sub, &cycles[2], cycles))
	assert.True(t, ShouldIncludeInCycle(sub, &cycles[3], cycles))
}

func TestShouldIncludeInCycle_SeasonalNoConstraintsIncluded(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1)}
	sub := activeSub(model.FrequencySeasonal)

	// Never delivered and no first cycle configured: include.
	assert.True(t, ShouldIncludeInCycle(sub, &cycles[0], cycles))
}

func TestShouldIncludeInCycle_SeasonalFirstCycleMissingFailsOpen(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1), cycleOn(2026, 2, 1)}

	sub := activeSub(model.FrequencySeasonal)
	missing := uuid.New()
	sub.FirstCycleID = &missing

	assert.True(t, ShouldIncludeInCycle(sub, &cycles[0], cycles))
}

func TestShouldIncludeInCycle_SeasonalGapCounting(t *testing.T) {
	cycles := []model.DeliveryCycle{
		cycleOn(2026, 1, 1), // last delivered
		cycleOn(2026, 2, 1),
		cycleOn(2026, 3, 1),
		cycleOn(2026, 4, 1),
		cycleOn(2026, 5, 1),
	}

	sub := activeSub(model.FrequencySeasonal)
	sub.LastDeliveredCycleID = &cycles[0].ID

	tests := []struct {
		name     string
		target   int
		included bool
	}{
		{"next cycle, gap 1", 1, false},
		{"gap 2", 2, false},
		{"gap 3 reaches seasonal cadence", 3, true},
		{"gap 4", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.included, ShouldIncludeInCycle(sub, &cycles[tt.target], cycles))
		})
	}
}

func TestShouldIncludeInCycle_SeasonalGapTolerantOfIrregularDates(t *testing.T) {
	// Irregularly spaced cycles: the gap counts positions, not months.
	cycles := []model.DeliveryCycle{
		cycleOn(2026, 1, 1),
		cycleOn(2026, 1, 20),
		cycleOn(2026, 5, 15),
		cycleOn(2026, 11, 2),
	}

	sub := activeSub(model.FrequencySeasonal)
	sub.LastDeliveredCycleID = &cycles[0].ID

	assert.False(t, ShouldIncludeInCycle(sub, &cycles[2], cycles))
	assert.True(t, ShouldIncludeInCycle(sub, &cycles[3], cycles))
}

func TestShouldIncludeInCycle_SeasonalLastDeliveredMissingFailsOpen(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1), cycleOn(2026, 2, 1)}

	sub := activeSub(model.FrequencySeasonal)
	deleted := uuid.New()
	sub.LastDeliveredCycleID = &deleted

	// The referenced cycle was removed from the reference set: include
	// rather than silently starving the subscriber.
	assert.True(t, ShouldIncludeInCycle(sub, &cycles[1], cycles))
}

func TestShouldIncludeInCycle_UnsortedReferenceSet(t *testing.T) {
	// The engine must not rely on caller-supplied ordering.
	c1 := cycleOn(2026, 1, 1)
	c2 := cycleOn(2026, 2, 1)
	c3 := cycleOn(2026, 3, 1)
	c4 := cycleOn(2026, 4, 1)
	shuffled := []model.DeliveryCycle{c3, c1, c4, c2}

	sub := activeSub(model.FrequencySeasonal)
	sub.LastDeliveredCycleID = &c1.ID

	assert.False(t, ShouldIncludeInCycle(sub, &c3, shuffled))
	assert.True(t, ShouldIncludeInCycle(sub, &c4, shuffled))
}

func TestShouldIncludeInCycle_NilInputs(t *testing.T) {
	cycles := []model.DeliveryCycle{cycleOn(2026, 1, 1)}

	require.False(t, ShouldIncludeInCycle(nil, &cycles[0], cycles))
	require.False(t, ShouldIncludeInCycle(activeSub(model.FrequencyMonthly), nil, cycles))
}
