package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListBoxTypes(t *testing.T) {
	ctx := context.Background()
	boxes := []model.BoxType{
		{ID: "monthly-standard", Name: "Monthly Standard", PriceEUR: 24.90, Active: true},
		{ID: "premium", Name: "Premium", PriceEUR: 49.90, Active: true},
	}

	boxRepo := new(MockBoxTypeRepository)
	boxRepo.On("List", ctx).Return(boxes, nil)

	svc := NewCatalogService(boxRepo, new(MockCycleRepository), zerolog.Nop())
	got, err := svc.ListBoxTypes(ctx)

	require.NoError(t, err)
	assert.Equal(t, boxes, got)
}

func TestCatalogService_GetBoxType_NotFound(t *testing.T) {
	ctx := context.Background()

	boxRepo := new(MockBoxTypeRepository)
	boxRepo.On("GetByID", ctx, "nope").Return(nil, nil)

	svc := NewCatalogService(boxRepo, new(MockCycleRepository), zerolog.Nop())
	got, err := svc.GetBoxType(ctx, "nope")

	assert.ErrorIs(t, err, model.ErrBoxTypeNotFound)
	assert.Nil(t, got)
}

func TestCatalogService_ListCycles(t *testing.T) {
	ctx := context.Background()
	cycles := []model.DeliveryCycle{
		{ID: uuid.New(), DeliveryDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Status: model.CycleUpcoming},
	}

	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("ListUpcoming", ctx).Return(cycles, nil)

	svc := NewCatalogService(new(MockBoxTypeRepository), cycleRepo, zerolog.Nop())
	got, err := svc.ListCycles(ctx)

	require.NoError(t, err)
	assert.Equal(t, cycles, got)
}

func TestCatalogService_ListCycles_Error(t *testing.T) {
	ctx := context.Background()

	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("ListUpcoming", ctx).Return(nil, errors.New("database error"))

	svc := NewCatalogService(new(MockBoxTypeRepository), cycleRepo, zerolog.Nop())
	got, err := svc.ListCycles(ctx)

	require.Error(t, err)
	assert.Nil(t, got)
}

func newCatalogService(cycleRepo *MockCycleRepository, now time.Time) CatalogService {
	return &catalogService{
		boxRepo:   new(MockBoxTypeRepository),
		cycleRepo: cycleRepo,
		now:       func() time.Time { return now },
		logger:    zerolog.Nop(),
	}
}

func TestCatalogService_CreateCycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	req := model.CycleCreateRequest{
		DeliveryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Title:        "October 2026",
	}

	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("Create", ctx, mock.MatchedBy(func(c *model.DeliveryCycle) bool {
		return c.DeliveryDate.Equal(req.DeliveryDate) &&
			c.Status == model.CycleUpcoming &&
			c.Title == "October 2026" &&
			c.CreatedAt.Equal(now)
	})).Return(nil)

	svc := newCatalogService(cycleRepo, now)
	cycle, err := svc.CreateCycle(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, model.CycleUpcoming, cycle.Status)
	assert.NotEqual(t, uuid.Nil, cycle.ID)
	cycleRepo.AssertExpectations(t)
}

func TestCatalogService_SetCycleStatus_Delivered(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	delivered := &model.DeliveryCycle{ID: id, Status: model.CycleDelivered}

	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("MarkDelivered", ctx, id).Return(true, nil)
	cycleRepo.On("GetByID", ctx, id).Return(delivered, nil)

	svc := newCatalogService(cycleRepo, time.Now())
	cycle, err := svc.SetCycleStatus(ctx, id, model.CycleDelivered)

	require.NoError(t, err)
	assert.Equal(t, model.CycleDelivered, cycle.Status)
	cycleRepo.AssertExpectations(t)
}

func TestCatalogService_SetCycleStatus_OutOfOrder(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	// Archiving a cycle that is still upcoming: the guarded UPDATE touches
	// nothing and the row still exists.
	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("MarkArchived", ctx, id).Return(false, nil)
	cycleRepo.On("GetByID", ctx, id).Return(&model.DeliveryCycle{ID: id, Status: model.CycleUpcoming}, nil)

	svc := newCatalogService(cycleRepo, time.Now())
	cycle, err := svc.SetCycleStatus(ctx, id, model.CycleArchived)

	assert.ErrorIs(t, err, model.ErrCycleStateChanged)
	assert.Nil(t, cycle)
}

func TestCatalogService_SetCycleStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	cycleRepo := new(MockCycleRepository)
	cycleRepo.On("MarkDelivered", ctx, id).Return(false, nil)
	cycleRepo.On("GetByID", ctx, id).Return(nil, nil)

	svc := newCatalogService(cycleRepo, time.Now())
	cycle, err := svc.SetCycleStatus(ctx, id, model.CycleDelivered)

	assert.ErrorIs(t, err, model.ErrCycleNotFound)
	assert.Nil(t, cycle)
}

func TestCatalogService_SetCycleStatus_InvalidTarget(t *testing.T) {
	ctx := context.Background()

	cycleRepo := new(MockCycleRepository)

	svc := newCatalogService(cycleRepo, time.Now())
	cycle, err := svc.SetCycleStatus(ctx, uuid.New(), model.CycleUpcoming)

	assert.ErrorIs(t, err, model.ErrCycleStateChanged)
	assert.Nil(t, cycle)
	cycleRepo.AssertNotCalled(t, "MarkDelivered")
	cycleRepo.AssertNotCalled(t, "MarkArchived")
}
