package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appsub "github.com/vintagecrib/backend/internal/application/subscription"
	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/shared"
	domainsub "github.com/vintagecrib/backend/internal/domain/subscription"
)

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*catalog.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*catalog.Item)}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, catalog.ErrItemNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*domainsub.Subscription
}

func (r *fakeSubscriptionRepo) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*domainsub.Subscription, error) {
	sub, ok := r.subs[sellerID]
	if !ok {
		return nil, domainsub.ErrSubscriptionNotFound
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeSubscriptionRepo) Save(ctx context.Context, sub *domainsub.Subscription) error {
	r.subs[sub.SellerID] = sub
	return nil
}

func newService(tier domainsub.Tier, sellerID uuid.UUID) (*Service, *fakeItemRepo) {
	items := newFakeItemRepo()
	subs := &fakeSubscriptionRepo{subs: map[uuid.UUID]*domainsub.Subscription{
		sellerID: {SellerID: sellerID, Tier: tier},
	}}
	gate := appsub.NewGate(subs, domainsub.DefaultEntitlements(), zap.NewNop(), appsub.DefaultGateConfig())
	return NewService(items, gate, zap.NewNop()), items
}

func TestService_CreateItem(t *testing.T) {
	sellerID := uuid.New()
	svc, items := newService(domainsub.TierFree, sellerID)
	ctx := context.Background()

	input := CreateItemInput{
		Title:       "Vintage Band Tee",
		Description: "Faded black, single stitch.",
		Price:       decimal.NewFromInt(35),
		Brand:       "Hanes",
		Size:        "L",
		Condition:   "good",
		Category:    "tops",
		ImageURLs:   []string{"https://img.example.com/1.jpg"},
	}

	item, err := svc.CreateItem(ctx, sellerID, input)
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemStatusDraft, item.Status)
	assert.Equal(t, sellerID, item.SellerID)
	assert.Equal(t, input.ImageURLs, item.ImageURLs)

	stored, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, stored.ID)
}

func TestService_CreateItem_QuotaExceeded(t *testing.T) {
	sellerID := uuid.New()
	svc, _ := newService(domainsub.TierFree, sellerID)
	ctx := context.Background()

	// The free tier caps at five items
	for i := 0; i < 5; i++ {
		_, err := svc.CreateItem(ctx, sellerID, CreateItemInput{
			Title: "Tee",
			Price: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateItem(ctx, sellerID, CreateItemInput{
		Title: "One too many",
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, shared.ErrQuotaExceeded)
}

func TestService_CreateItem_UnlimitedTier(t *testing.T) {
	sellerID := uuid.New()
	svc, _ := newService(domainsub.TierPremium, sellerID)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.CreateItem(ctx, sellerID, CreateItemInput{
			Title: "Jacket",
			Price: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
	}
}

func TestService_CreateItem_InvalidInput(t *testing.T) {
	sellerID := uuid.New()
	svc, _ := newService(domainsub.TierFree, sellerID)

	_, err := svc.CreateItem(context.Background(), sellerID, CreateItemInput{
		Title: "",
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidItemData)
}

func TestService_GetItem_NotFound(t *testing.T) {
	sellerID := uuid.New()
	svc, _ := newService(domainsub.TierFree, sellerID)

	_, err := svc.GetItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}
