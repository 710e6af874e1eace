package service

import (
	"context"
	"fmt"
	"time"

	"fitflow-box/internal/model"
	"fitflow-box/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	boxRepo   repository.BoxTypeRepository
	cycleRepo repository.CycleRepository
	now       func() time.Time
	logger    zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(boxRepo repository.BoxTypeRepository, cycleRepo repository.CycleRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		boxRepo:   boxRepo,
		cycleRepo: cycleRepo,
		now:       time.Now,
		logger:    logger.With().Str("service", "catalog").Logger(),
	}
}

// ListBoxTypes retrieves all active box types.
func (s *catalogService) ListBoxTypes(ctx context.Context) ([]model.BoxType, error) {
	boxes, err := s.boxRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list box types: %w", err)
	}
	return boxes, nil
}

// GetBoxType retrieves a box type by ID.
func (s *catalogService) GetBoxType(ctx context.Context, id string) (*model.BoxType, error) {
	box, err := s.boxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get box type: %w", err)
	}
	if box == nil {
		return nil, model.ErrBoxTypeNotFound
	}
	return box, nil
}

// ListCycles retrieves upcoming delivery cycles.
func (s *catalogService) ListCycles(ctx context.Context) ([]model.DeliveryCycle, error) {
	cycles, err := s.cycleRepo.ListUpcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}

// CreateCycle opens a new delivery cycle in the upcoming state.
func (s *catalogService) CreateCycle(ctx context.Context, req model.CycleCreateRequest) (*model.DeliveryCycle, error) {
	cycle := &model.DeliveryCycle{
		ID:           uuid.New(),
		DeliveryDate: req.DeliveryDate,
		Status:       model.CycleUpcoming,
		Title:        req.Title,
		Description:  req.Description,
		Revealed:     req.Revealed,
		CreatedAt:    s.now(),
	}

	if err := s.cycleRepo.Create(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	s.logger.Info().
		Str("cycle_id", cycle.ID.String()).
		Time("delivery_date", cycle.DeliveryDate).
		Msg("delivery cycle opened")
	return cycle, nil
}

// SetCycleStatus advances a cycle to delivered or archived.
func (s *catalogService) SetCycleStatus(ctx context.Context, id uuid.UUID, target model.CycleStatus) (*model.DeliveryCycle, error) {
	var (
		moved bool
		err   error
	)
	switch target {
	case model.CycleDelivered:
		moved, err = s.cycleRepo.MarkDelivered(ctx, id)
	case model.CycleArchived:
		moved, err = s.cycleRepo.MarkArchived(ctx, id)
	default:
		return nil, model.ErrCycleStateChanged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cycle status: %w", err)
	}

	if !moved {
		cycle, getErr := s.cycleRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, fmt.Errorf("failed to update cycle status: %w", getErr)
		}
		if cycle == nil {
			return nil, model.ErrCycleNotFound
		}
		return nil, model.ErrCycleStateChanged
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload cycle: %w", err)
	}
	return cycle, nil
}
