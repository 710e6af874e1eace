package integration

import (
	"context"
	"testing"
	"time"

	"fitflow-box/internal/model"
	"fitflow-box/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewSubscriptionRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByID returns nil for missing subscription", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		sub, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("ListActive excludes other statuses", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)

		activeID := SeedSubscription(t, testDB.Pool, model.StatusActive, model.FrequencyMonthly)
		SeedSubscription(t, testDB.Pool, model.StatusPaused, model.FrequencyMonthly)
		SeedSubscription(t, testDB.Pool, model.StatusCancelled, model.FrequencySeasonal)

		subs, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, activeID, subs[0].ID)
	})

	t.Run("UpdateStatus is guarded on the expected status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		id := SeedSubscription(t, testDB.Pool, model.StatusActive, model.FrequencyMonthly)

		now := time.Now().UTC()
		updated, err := repo.UpdateStatus(ctx, id, model.StatusActive, model.StatusPaused, &now, nil)
		require.NoError(t, err)
		assert.True(t, updated)

		// The row left active; applying the same guarded update again fails.
		updated, err = repo.UpdateStatus(ctx, id, model.StatusActive, model.StatusPaused, &now, nil)
		require.NoError(t, err)
		assert.False(t, updated)

		sub, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaused, sub.Status)
		require.NotNil(t, sub.PausedAt)
	})

	t.Run("AdvanceLastDeliveredCycle only moves forward", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		cycleIDs := SeedCycles(t, testDB.Pool, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 3)
		id := SeedSubscription(t, testDB.Pool, model.StatusActive, model.FrequencySeasonal)

		err := repo.AdvanceLastDeliveredCycle(ctx, id, cycleIDs[1],
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		sub, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, sub.LastDeliveredCycleID)
		assert.Equal(t, cycleIDs[1], *sub.LastDeliveredCycleID)

		// A rerun against an earlier cycle leaves the pointer untouched.
		err = repo.AdvanceLastDeliveredCycle(ctx, id, cycleIDs[0],
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		sub, err = repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, cycleIDs[1], *sub.LastDeliveredCycleID)
	})

	t.Run("UpdatePreferences round-trips JSONB", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		id := SeedSubscription(t, testDB.Pool, model.StatusActive, model.FrequencyMonthly)

		prefs := model.Preferences{
			Sports: []string{"running", "yoga"},
			Sizes:  []string{"M", "42"},
			Notes:  "no citrus flavours",
		}
		require.NoError(t, repo.UpdatePreferences(ctx, id, prefs))

		sub, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, prefs, sub.Preferences)
	})
}

func TestPreorderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewPreorderRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByToken returns nil for unknown token", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		p, err := repo.GetByToken(ctx, "tok-missing")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("GetByID matches the token read", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		id, token := SeedPreorder(t, testDB.Pool, time.Now().Add(time.Hour))

		byToken, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, byToken)

		byID, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, byToken.ConversionToken, byID.ConversionToken)

		missing, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("MarkConverted flips the row exactly once", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		id, token := SeedPreorder(t, testDB.Pool, time.Now().Add(time.Hour))

		orderID := uuid.New()

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		flipped, err := repo.MarkConverted(ctx, tx, id, orderID)
		require.NoError(t, err)
		assert.True(t, flipped)
		require.NoError(t, tx.Commit(ctx))

		// A second attempt against the same row loses the compare-and-set.
		tx, err = orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		flipped, err = repo.MarkConverted(ctx, tx, id, uuid.New())
		require.NoError(t, err)
		assert.False(t, flipped)
		require.NoError(t, tx.Rollback(ctx))

		p, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, model.ConversionConverted, p.ConversionStatus)
		require.NotNil(t, p.ConvertedToOrder)
		assert.Equal(t, orderID, *p.ConvertedToOrder)
	})

	t.Run("ExpirePending flips only lapsed rows and is idempotent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)

		now := time.Now().UTC()
		SeedPreorder(t, testDB.Pool, now.Add(-time.Hour))
		SeedPreorder(t, testDB.Pool, now.Add(-time.Minute))
		_, liveToken := SeedPreorder(t, testDB.Pool, now.Add(time.Hour))

		count, err := repo.ExpirePending(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.ExpirePending(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		live, err := repo.GetByToken(ctx, liveToken)
		require.NoError(t, err)
		assert.Equal(t, model.ConversionPending, live.ConversionStatus)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("CreateForCycle deduplicates on subscription and cycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBoxTypes(t, testDB.Pool)
		cycleIDs := SeedCycles(t, testDB.Pool, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1)
		subID := SeedSubscription(t, testDB.Pool, model.StatusActive, model.FrequencyMonthly)

		now := time.Now().UTC()
		order := &model.Order{
			ID:             uuid.New(),
			SubscriptionID: &subID,
			CycleID:        &cycleIDs[0],
			BoxTypeID:      "monthly-standard",
			PriceEUR:       24.90,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		created, err := repo.CreateForCycle(ctx, order)
		require.NoError(t, err)
		assert.True(t, created)

		// Replaying the batch produces a duplicate insert attempt, which
		// the unique constraint swallows.
		dup := *order
		dup.ID = uuid.New()
		created, err = repo.CreateForCycle(ctx, &dup)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, subID, *got.SubscriptionID)
	})
}

func TestPromoRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewPromoRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByCode and IncrementUsage", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedPromoCode(t, testDB.Pool, "FITFLOW10", 10)

		p, err := repo.GetByCode(ctx, "FITFLOW10")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 10.0, p.DiscountPercent)
		assert.True(t, p.Enabled)
		assert.Equal(t, 0, p.UsedCount)

		require.NoError(t, repo.IncrementUsage(ctx, "FITFLOW10"))

		p, err = repo.GetByCode(ctx, "FITFLOW10")
		require.NoError(t, err)
		assert.Equal(t, 1, p.UsedCount)
	})

	t.Run("GetByCode returns nil for unknown code", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		p, err := repo.GetByCode(ctx, "NOPE")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestCycleRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCycleRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("ListOrderedByDate returns cycles in date order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCycles(t, testDB.Pool, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 3)

		cycles, err := repo.ListOrderedByDate(ctx)
		require.NoError(t, err)
		require.Len(t, cycles, 3)
		for i, id := range ids {
			assert.Equal(t, id, cycles[i].ID)
		}
		assert.True(t, cycles[0].DeliveryDate.Before(cycles[2].DeliveryDate))
	})

	t.Run("Create inserts an upcoming cycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		cycle := &model.DeliveryCycle{
			ID:           uuid.New(),
			DeliveryDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			Status:       model.CycleUpcoming,
			Title:        "November 2026",
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, cycle))

		got, err := repo.GetByID(ctx, cycle.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.CycleUpcoming, got.Status)
		assert.Equal(t, "November 2026", got.Title)
	})

	t.Run("Status moves forward only", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCycles(t, testDB.Pool, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1)
		id := ids[0]

		// Archiving straight from upcoming changes nothing.
		moved, err := repo.MarkArchived(ctx, id)
		require.NoError(t, err)
		assert.False(t, moved)

		moved, err = repo.MarkDelivered(ctx, id)
		require.NoError(t, err)
		assert.True(t, moved)

		// A replayed delivery is a no-op.
		moved, err = repo.MarkDelivered(ctx, id)
		require.NoError(t, err)
		assert.False(t, moved)

		moved, err = repo.MarkArchived(ctx, id)
		require.NoError(t, err)
		assert.True(t, moved)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.CycleArchived, got.Status)
	})
}
