package service

import (
	"context"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActive(ctx context.Context) ([]model.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next model.SubscriptionStatus, pausedAt, cancelledAt *time.Time) (bool, error) {
	args := m.Called(ctx, id, expected, next, pausedAt, cancelledAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) AdvanceLastDeliveredCycle(ctx context.Context, id, cycleID uuid.UUID, deliveryDate time.Time) error {
	args := m.Called(ctx, id, cycleID, deliveryDate)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) error {
	args := m.Called(ctx, id, prefs)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdateFrequency(ctx context.Context, id uuid.UUID, freq model.Frequency) error {
	args := m.Called(ctx, id, freq)
	return args.Error(0)
}

// MockCycleRepository is a mock implementation of CycleRepository.
type MockCycleRepository struct {
	mock.Mock
}

func (m *MockCycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryCycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryCycle), args.Error(1)
}

func (m *MockCycleRepository) ListOrderedByDate(ctx context.Context) ([]model.DeliveryCycle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeliveryCycle), args.Error(1)
}

func (m *MockCycleRepository) ListUpcoming(ctx context.Context) ([]model.DeliveryCycle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeliveryCycle), args.Error(1)
}

func (m *MockCycleRepository) Create(ctx context.Context, cycle *model.DeliveryCycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *MockCycleRepository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCycleRepository) MarkArchived(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPreorderRepository is a mock implementation of PreorderRepository.
type MockPreorderRepository struct {
	mock.Mock
}

func (m *MockPreorderRepository) GetByToken(ctx context.Context, token string) (*model.Preorder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preorder), args.Error(1)
}

func (m *MockPreorderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Preorder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preorder), args.Error(1)
}

func (m *MockPreorderRepository) MarkConverted(ctx context.Context, tx pgx.Tx, id, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPreorderRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockPromoRepository is a mock implementation of PromoRepository.
type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockBoxTypeRepository is a mock implementation of BoxTypeRepository.
type MockBoxTypeRepository struct {
	mock.Mock
}

func (m *MockBoxTypeRepository) List(ctx context.Context) ([]model.BoxType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoxType), args.Error(1)
}

func (m *MockBoxTypeRepository) GetByID(ctx context.Context, id string) (*model.BoxType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoxType), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateForCycle(ctx context.Context, order *model.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CreateFromPreorder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockPromoValidator is a mock implementation of promo.Validator.
type MockPromoValidator struct {
	mock.Mock
}

func (m *MockPromoValidator) Resolve(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
