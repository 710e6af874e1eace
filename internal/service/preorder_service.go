package service

import (
	"context"
	"fmt"
	"time"

	"fitflow-box/internal/model"
	"fitflow-box/internal/preorder"
	"fitflow-box/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// preorderService implements PreorderService.
type preorderService struct {
	preorderRepo repository.PreorderRepository
	orderRepo    repository.OrderRepository
	promoRepo    repository.PromoRepository
	logger       zerolog.Logger
}

// NewPreorderService creates a new preorder service.
func NewPreorderService(
	preorderRepo repository.PreorderRepository,
	orderRepo repository.OrderRepository,
	promoRepo repository.PromoRepository,
	logger zerolog.Logger,
) PreorderService {
	return &preorderService{
		preorderRepo: preorderRepo,
		orderRepo:    orderRepo,
		promoRepo:    promoRepo,
		logger:       logger.With().Str("service", "preorder").Logger(),
	}
}

// GetByToken retrieves a preorder for display. The conversion status is
// evaluated lazily so a lapsed token reads as expired even before the sweep
// has flipped the row.
func (s *preorderService) GetByToken(ctx context.Context, token string, now time.Time) (*model.Preorder, error) {
	p, err := s.preorderRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get preorder: %w", err)
	}
	if p == nil {
		return nil, model.ErrPreorderNotFound
	}

	p.ConversionStatus = preorder.EffectiveStatus(p, now)
	return p, nil
}

// Convert turns a pending preorder into an order. The order insert and the
// preorder flip commit in one transaction; the compare-and-set on the
// preorder row decides races, so a token that loses the race gets the same
// "already converted" answer as a replayed one.
func (s *preorderService) Convert(ctx context.Context, token string, now time.Time) (*model.Order, error) {
	p, err := s.preorderRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get preorder: %w", err)
	}
	if p == nil {
		return nil, model.ErrPreorderNotFound
	}

	if err := preorder.CheckConvertible(p, now); err != nil {
		s.logger.Warn().
			Str("preorder_id", p.ID.String()).
			Str("conversion_status", string(p.ConversionStatus)).
			Err(err).
			Msg("conversion rejected")
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to convert preorder: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback conversion transaction")
			}
		}
	}()

	order := &model.Order{
		ID:         uuid.New(),
		PreorderID: &p.ID,
		BoxTypeID:  p.BoxTypeID,
		PriceEUR:   p.PriceEUR,
		PromoCode:  p.PromoCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.orderRepo.CreateFromPreorder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to convert preorder: %w", err)
	}

	var flipped bool
	flipped, err = s.preorderRepo.MarkConverted(ctx, tx, p.ID, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to convert preorder: %w", err)
	}
	if !flipped {
		// Lost the compare-and-set: either a concurrent request converted
		// the row first, or the expiry sweep flipped it mid-flight. Re-read
		// so the caller gets the verdict that actually won.
		err = s.lostRaceError(ctx, p.ID)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to convert preorder: %w", err)
	}

	if p.PromoCode != nil {
		if usageErr := s.promoRepo.IncrementUsage(ctx, *p.PromoCode); usageErr != nil {
			// The conversion already committed; usage accounting is best effort.
			s.logger.Error().
				Err(usageErr).
				Str("promo_code", *p.PromoCode).
				Msg("failed to record promo usage after conversion")
		}
	}

	s.logger.Info().
		Str("preorder_id", p.ID.String()).
		Str("order_id", order.ID.String()).
		Msg("preorder converted to order")

	return order, nil
}

// lostRaceError inspects the row that beat a failed compare-and-set. A
// converted row means the token was already used; an expired row means the
// sweep won. The repository read is best effort: when it fails, the used
// token answer is the safe one.
func (s *preorderService) lostRaceError(ctx context.Context, id uuid.UUID) error {
	p, err := s.preorderRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return model.ErrPreorderAlreadyConverted
	}
	if p.ConversionStatus == model.ConversionExpired {
		return model.ErrPreorderLinkExpired
	}
	return model.ErrPreorderAlreadyConverted
}

// SweepExpired flips lapsed pending preorders to expired.
func (s *preorderService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.preorderRepo.ExpirePending(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired preorders: %w", err)
	}
	return count, nil
}
