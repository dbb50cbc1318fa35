package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetshop/backend/internal/inventory"
	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/logger"
)

// stubRepo serializes adjustments with a mutex the same way the postgres
// repository serializes them with a row lock.
type stubRepo struct {
	mu       sync.Mutex
	products map[string]*model.Product
	ledger   []model.LedgerEntry
}

func newStubRepo(products ...*model.Product) *stubRepo {
	r := &stubRepo{products: map[string]*model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubRepo) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, *model.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[input.ProductID]
	if !ok {
		return nil, nil, inventory.ErrProductNotFound
	}

	before := p.Quantity
	if input.Kind.Decrements() {
		if p.Quantity < input.Quantity {
			return nil, nil, &inventory.InsufficientStockError{
				ProductID: p.ID,
				Requested: input.Quantity,
				Available: p.Quantity,
			}
		}
		p.Quantity -= input.Quantity
	} else {
		p.Quantity += input.Quantity
	}

	entry := model.LedgerEntry{
		ID:             uuid.New().String(),
		ProductID:      p.ID,
		Kind:           input.Kind,
		Quantity:       input.Quantity,
		QuantityBefore: before,
		QuantityAfter:  p.Quantity,
		CreatedAt:      time.Now(),
	}
	if input.ActingUserID != "" {
		uid := input.ActingUserID
		entry.UserID = &uid
	}
	r.ledger = append(r.ledger, entry)

	cp := *p
	return &cp, &entry, nil
}

func (r *stubRepo) ListLedger(ctx context.Context, filters *dto.LedgerFilters) ([]model.LedgerEntry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.LedgerEntry, len(r.ledger))
	copy(out, r.ledger)
	return out, len(out), nil
}

type noopLocker struct{}

func (noopLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (noopLocker) ReleaseLock(ctx context.Context, key, value string) error { return nil }

type deniedLocker struct{}

func (deniedLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return false, nil
}

func (deniedLocker) ReleaseLock(ctx context.Context, key, value string) error { return nil }

type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, value)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func testProduct(qty int) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      "Dark Chocolate Truffles",
		Price:     12.50,
		Quantity:  qty,
		IsActive:  true,
	}
}

func newTestUseCase(repo inventory.Repository, locker inventory.Locker, threshold int) inventory.UseCase {
	return NewInventoryUseCase(repo, locker, nil, threshold, logger.NewNop())
}

func TestAdjustStock_RejectsNonPositiveQuantity(t *testing.T) {
	uc := newTestUseCase(newStubRepo(), noopLocker{}, 0)

	for _, qty := range []int{0, -3} {
		_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
			ProductID: "p1",
			Quantity:  qty,
			Kind:      model.KindPurchase,
		})
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	}
}

func TestAdjustStock_RejectsUnknownKind(t *testing.T) {
	uc := newTestUseCase(newStubRepo(), noopLocker{}, 0)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1",
		Quantity:  1,
		Kind:      model.LedgerKind("giveaway"),
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidKind)
}

func TestAdjustStock_ProductNotFound(t *testing.T) {
	uc := newTestUseCase(newStubRepo(), noopLocker{}, 0)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "missing",
		Quantity:  1,
		Kind:      model.KindReserve,
	})
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)
}

func TestAdjustStock_PurchaseDecrementsAndRecordsLedger(t *testing.T) {
	p := testProduct(10)
	repo := newStubRepo(p)
	uc := newTestUseCase(repo, noopLocker{}, 0)

	userID := uuid.New().String()
	result, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:    p.ID,
		Quantity:     3,
		Kind:         model.KindPurchase,
		ActingUserID: userID,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.Product.Quantity)
	assert.Equal(t, model.KindPurchase, result.Entry.Kind)
	assert.Equal(t, 10, result.Entry.QuantityBefore)
	assert.Equal(t, 7, result.Entry.QuantityAfter)
	require.NotNil(t, result.Entry.UserID)
	assert.Equal(t, userID, *result.Entry.UserID)

	entries, total, err := uc.ListLedger(context.Background(), &dto.LedgerFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, result.Entry.ID, entries[0].ID)
}

func TestAdjustStock_RestockIncrements(t *testing.T) {
	p := testProduct(2)
	repo := newStubRepo(p)
	uc := newTestUseCase(repo, noopLocker{}, 0)

	result, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  50,
		Kind:      model.KindRestock,
	})
	require.NoError(t, err)

	assert.Equal(t, 52, result.Product.Quantity)
	assert.Equal(t, 2, result.Entry.QuantityBefore)
	assert.Equal(t, 52, result.Entry.QuantityAfter)
	assert.Nil(t, result.Entry.UserID)
}

func TestAdjustStock_InsufficientStockReportsAvailable(t *testing.T) {
	p := testProduct(2)
	uc := newTestUseCase(newStubRepo(p), noopLocker{}, 0)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  5,
		Kind:      model.KindReserve,
	})

	var insufficient *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// Failed adjustments leave no ledger trace.
	entries, _, err := uc.ListLedger(context.Background(), &dto.LedgerFilters{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdjustStock_ExactRemainingStockSucceeds(t *testing.T) {
	p := testProduct(5)
	uc := newTestUseCase(newStubRepo(p), noopLocker{}, 0)

	result, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  5,
		Kind:      model.KindPurchase,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Product.Quantity)
}

func TestAdjustStock_LockContention(t *testing.T) {
	p := testProduct(5)
	uc := newTestUseCase(newStubRepo(p), deniedLocker{}, 0)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  1,
		Kind:      model.KindReserve,
	})
	assert.ErrorIs(t, err, inventory.ErrLockContention)
}

func TestAdjustStock_ConcurrentReservesNeverOversell(t *testing.T) {
	p := testProduct(10)
	repo := newStubRepo(p)
	uc := newTestUseCase(repo, noopLocker{}, 0)

	const workers = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
				ProductID: p.ID,
				Quantity:  1,
				Kind:      model.KindReserve,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				var insufficient *inventory.InsufficientStockError
				assert.ErrorAs(t, err, &insufficient)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, repo.products[p.ID].Quantity)

	// Every success left exactly one ledger entry, and the before/after
	// chain accounts for every unit.
	entries, total, err := uc.ListLedger(context.Background(), &dto.LedgerFilters{})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	for _, e := range entries {
		assert.Equal(t, e.QuantityBefore-e.Quantity, e.QuantityAfter)
	}
}

func TestAdjustStock_PublishesLowStockEvent(t *testing.T) {
	p := testProduct(6)
	events := &capturePublisher{}
	uc := NewInventoryUseCase(newStubRepo(p), noopLocker{}, events, 5, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  2,
		Kind:      model.KindPurchase,
	})
	require.NoError(t, err)

	// Publishing is detached from the request.
	assert.Eventually(t, func() bool { return events.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestAdjustStock_RestockDoesNotPublishLowStock(t *testing.T) {
	p := testProduct(1)
	events := &capturePublisher{}
	uc := NewInventoryUseCase(newStubRepo(p), noopLocker{}, events, 5, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: p.ID,
		Quantity:  2,
		Kind:      model.KindRestock,
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, events.count())
}
