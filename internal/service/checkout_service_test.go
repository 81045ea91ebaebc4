package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bistro-api/internal/model"
	"bistro-api/internal/payment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentRepository is a mock implementation of repository.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx pgx.Tx, p *model.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	args := m.Called(ctx, amountCents, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
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

func ownedCartItems(email string) []model.CartItem {
	return []model.CartItem{
		{ID: uuid.New(), Email: email, MenuItemID: uuid.New(), Name: "Lasagna", Price: 5.00, CreatedAt: time.Now()},
		{ID: uuid.New(), Email: email, MenuItemID: uuid.New(), Name: "Tiramisu", Price: 7.50, CreatedAt: time.Now()},
	}
}

func cartIDs(items []model.CartItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)
	mockGateway.On("CreateIntent", ctx, int64(1250), "usd").
		Return(&payment.Intent{TransactionRef: "pi_123", ClientSecret: "pi_123_secret"}, nil)
	mockPaymentRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockPaymentRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Payment")).Return(nil)
	mockCartRepo.On("DeleteMany", ctx, mockTx, ids).Return(int64(2), nil)
	mockTx.On("Commit", ctx).Return(nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEqual(t, uuid.Nil, resp.PaymentID)
	assert.Equal(t, "pi_123", resp.TransactionRef)
	assert.Equal(t, int64(2), resp.DeletedCount)

	mockCartRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
	mockPaymentRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)
}

func TestCheckoutService_Checkout_RecordsStoredPrices(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	var recorded *model.Payment
	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)
	mockGateway.On("CreateIntent", ctx, int64(1250), "usd").
		Return(&payment.Intent{TransactionRef: "pi_456", ClientSecret: "pi_456_secret"}, nil)
	mockPaymentRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockPaymentRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(2).(*model.Payment)
		}).
		Return(nil)
	mockCartRepo.On("DeleteMany", ctx, mockTx, ids).Return(int64(2), nil)
	mockTx.On("Commit", ctx).Return(nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, resp.PaymentID, recorded.ID)
	assert.Equal(t, "alice@example.com", recorded.Email)
	assert.Equal(t, int64(1250), recorded.AmountCents)
	assert.Equal(t, "usd", recorded.Currency)
	assert.Equal(t, ids, recorded.CartIDs)
	assert.Equal(t, "pi_456", recorded.TransactionRef)
}

func TestCheckoutService_Checkout_AmountMismatch(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	// Stored prices total 1250, the client claims less.
	req := &model.CheckoutRequest{AmountCents: 100, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.Error(t, err)
	assert.Equal(t, model.ErrAmountMismatch, err)
	assert.Nil(t, resp)

	mockCartRepo.AssertExpectations(t)
	mockGateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
	mockPaymentRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestCheckoutService_Checkout_GatewayFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)
	mockGateway.On("CreateIntent", ctx, int64(1250), "usd").
		Return(nil, errors.New("card declined"))

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.Error(t, err)
	assert.Equal(t, model.ErrPaymentGateway, err)
	assert.Nil(t, resp)

	mockGateway.AssertExpectations(t)
	mockPaymentRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	mockCartRepo.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_MissingCartItems(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := append(cartIDs(items), uuid.New())
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	// Only two of the three referenced lines exist.
	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.Error(t, err)
	assert.Equal(t, model.ErrCartItemNotFound, err)
	assert.Nil(t, resp)

	mockGateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_ForeignCartItem(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	items[1].Email = "bob@example.com"
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.Error(t, err)
	assert.Equal(t, model.ErrForbidden, err)
	assert.Nil(t, resp)

	mockGateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_EmptySelection(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	tests := []struct {
		name string
		req  *model.CheckoutRequest
	}{
		{name: "No cart IDs", req: &model.CheckoutRequest{AmountCents: 100}},
		{name: "Empty cart IDs", req: &model.CheckoutRequest{AmountCents: 100, CartIDs: []uuid.UUID{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Checkout(ctx, "alice@example.com", tt.req)

			require.Error(t, err)
			assert.Equal(t, model.ErrEmptySelection, err)
			assert.Nil(t, resp)
		})
	}

	mockCartRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_TransactionRollback(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil)
	mockGateway.On("CreateIntent", ctx, int64(1250), "usd").
		Return(&payment.Intent{TransactionRef: "pi_789", ClientSecret: "pi_789_secret"}, nil)
	mockPaymentRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockPaymentRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Payment")).Return(nil)
	mockCartRepo.On("DeleteMany", ctx, mockTx, ids).
		Return(int64(0), errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	resp, err := service.Checkout(ctx, "alice@example.com", req)

	require.Error(t, err)
	assert.Nil(t, resp)

	mockPaymentRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
}

func TestCheckoutService_CreateIntent(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		amountCents int64
		mockIntent  *payment.Intent
		mockError   error
		expectedErr error
		expectCall  bool
	}{
		{
			name:        "Success",
			amountCents: 500,
			mockIntent:  &payment.Intent{TransactionRef: "pi_abc", ClientSecret: "pi_abc_secret"},
			expectCall:  true,
		},
		{
			name:        "Zero amount",
			amountCents: 0,
		},
		{
			name:        "Negative amount",
			amountCents: -100,
		},
		{
			name:        "Gateway failure",
			amountCents: 500,
			mockError:   errors.New("gateway timeout"),
			expectedErr: model.ErrPaymentGateway,
			expectCall:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGateway := new(MockGateway)
			service := NewCheckoutService(new(MockPaymentRepository), new(MockCartRepository), mockGateway, logger)

			if tt.expectCall {
				mockGateway.On("CreateIntent", ctx, tt.amountCents, "usd").Return(tt.mockIntent, tt.mockError)
			}

			intent, err := service.CreateIntent(ctx, tt.amountCents)

			if tt.mockIntent != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.mockIntent, intent)
			} else {
				require.Error(t, err)
				assert.Nil(t, intent)
				if tt.expectedErr != nil {
					assert.Equal(t, tt.expectedErr, err)
				}
			}

			mockGateway.AssertExpectations(t)
			if !tt.expectCall {
				mockGateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCheckoutService_Checkout_SerialisesPerOwner(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	items := ownedCartItems("alice@example.com")
	ids := cartIDs(items)
	req := &model.CheckoutRequest{AmountCents: 1250, CartIDs: ids}

	mockPaymentRepo := new(MockPaymentRepository)
	mockCartRepo := new(MockCartRepository)
	mockGateway := new(MockGateway)

	service := NewCheckoutService(mockPaymentRepo, mockCartRepo, mockGateway, logger)

	// First checkout clears the lines, so the second sees an empty result and
	// fails with a missing-items error rather than double charging.
	mockCartRepo.On("GetByIDs", ctx, ids).Return(items, nil).Once()
	mockCartRepo.On("GetByIDs", ctx, ids).Return([]model.CartItem{}, nil).Once()
	mockGateway.On("CreateIntent", ctx, int64(1250), "usd").
		Return(&payment.Intent{TransactionRef: "pi_once", ClientSecret: "pi_once_secret"}, nil).Once()
	mockTx := new(MockTx)
	mockPaymentRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
	mockPaymentRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Payment")).Return(nil).Once()
	mockCartRepo.On("DeleteMany", ctx, mockTx, ids).Return(int64(2), nil).Once()
	mockTx.On("Commit", ctx).Return(nil).Once()

	first := make(chan error, 1)
	second := make(chan error, 1)

	go func() {
		_, err := service.Checkout(ctx, "alice@example.com", req)
		first <- err
	}()
	go func() {
		_, err := service.Checkout(ctx, "alice@example.com", req)
		second <- err
	}()

	errs := []error{<-first, <-second}

	var okCount, notFoundCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, model.ErrCartItemNotFound):
			notFoundCount++
		}
	}

	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, notFoundCount)
	mockGateway.AssertNumberOfCalls(t, "CreateIntent", 1)
}
