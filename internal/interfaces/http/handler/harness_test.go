package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/vintagecrib/backend/internal/application/catalog"
	appcrosspost "github.com/vintagecrib/backend/internal/application/crosspost"
	appsub "github.com/vintagecrib/backend/internal/application/subscription"
	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
	domainsub "github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
	"github.com/vintagecrib/backend/internal/interfaces/http/middleware"
)

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

type memItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*catalog.Item
}

func newMemItemRepo(items ...*catalog.Item) *memItemRepo {
	repo := &memItemRepo{items: make(map[uuid.UUID]*catalog.Item)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *memItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, catalog.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *memItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
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

type memRecordKey struct {
	itemID   uuid.UUID
	platform crosspost.PlatformName
}

type memRecordRepo struct {
	mu      sync.Mutex
	records map[memRecordKey]*crosspost.CrossPostRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[memRecordKey]*crosspost.CrossPostRecord)}
}

func (r *memRecordRepo) Upsert(ctx context.Context, record *crosspost.CrossPostRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[memRecordKey{record.ItemID, record.Platform}] = &clone
	return nil
}

func (r *memRecordRepo) FindByItem(ctx context.Context, itemID uuid.UUID) ([]crosspost.CrossPostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crosspost.CrossPostRecord
	for key, record := range r.records {
		if key.itemID == itemID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memRecordRepo) FindByItemAndPlatform(ctx context.Context, itemID uuid.UUID, platform crosspost.PlatformName) (*crosspost.CrossPostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[memRecordKey{itemID, platform}]
	if !ok {
		return nil, crosspost.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memRecordRepo) FindFailedBySeller(ctx context.Context, sellerID uuid.UUID, platform *crosspost.PlatformName) ([]crosspost.CrossPostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []crosspost.CrossPostRecord
	for _, record := range r.records {
		if record.SellerID != sellerID || record.Status != crosspost.RecordStatusFailed {
			continue
		}
		if platform != nil && record.Platform != *platform {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (r *memRecordRepo) CountByPlatform(ctx context.Context, itemID uuid.UUID) (map[crosspost.PlatformName]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[crosspost.PlatformName]int)
	for key, record := range r.records {
		if key.itemID == itemID {
			out[key.platform] = record.AttemptCount
		}
	}
	return out, nil
}

type memSellerRepo struct {
	sellers map[uuid.UUID]*domainsub.Seller
}

func (r *memSellerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domainsub.Seller, error) {
	seller, ok := r.sellers[id]
	if !ok {
		return nil, domainsub.ErrSellerNotFound
	}
	return seller, nil
}

type memSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*domainsub.Subscription
}

func (r *memSubscriptionRepo) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*domainsub.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[sellerID]
	if !ok {
		return nil, domainsub.ErrSubscriptionNotFound
	}
	clone := *sub
	return &clone, nil
}

func (r *memSubscriptionRepo) Save(ctx context.Context, sub *domainsub.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.SellerID] = sub
	return nil
}

type stubPublisher struct {
	platform crosspost.PlatformName
}

func (p *stubPublisher) Platform() crosspost.PlatformName { return p.platform }

func (p *stubPublisher) Mode() crosspost.PublishMode { return p.platform.DefaultMode() }

func (p *stubPublisher) Publish(ctx context.Context, payload *crosspost.ListingPayload) (crosspost.PublishResult, error) {
	if p.platform.DefaultMode() == crosspost.ModeManualPrepared {
		return crosspost.NewManualPreparedResult(p.platform, &crosspost.ManualPostPackage{
			Platform:      p.platform,
			FormattedText: payload.Description,
			Instructions:  []string{"Open the listing page"},
		}), nil
	}
	return crosspost.NewAutomatedResult(p.platform, "ext-100", "https://example.com/ext-100", decimal.NewFromFloat(1.25)), nil
}

type memRegistry struct {
	publishers map[crosspost.PlatformName]crosspost.MarketplacePublisher
}

func (r *memRegistry) Get(platform crosspost.PlatformName) (crosspost.MarketplacePublisher, error) {
	pub, ok := r.publishers[platform]
	if !ok {
		return nil, crosspost.ErrPublisherNotRegistered
	}
	return pub, nil
}

func (r *memRegistry) List() []crosspost.MarketplacePublisher {
	out := make([]crosspost.MarketplacePublisher, 0, len(r.publishers))
	for _, pub := range r.publishers {
		out = append(out, pub)
	}
	return out
}

// ---------------------------------------------------------------------------
// Test harness
// ---------------------------------------------------------------------------

type apiFixture struct {
	engine   *gin.Engine
	sellerID uuid.UUID
	item     *catalog.Item
	items    *memItemRepo
	records  *memRecordRepo
}

// newAPIFixture wires a full router with in-memory repositories and stub
// publishers for every external platform. Authentication relies on the
// X-Seller-ID development fallback.
func newAPIFixture(t *testing.T, tier domainsub.Tier) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	sellerID := uuid.New()
	item, err := catalog.NewItem(sellerID, "Levi's 501 Jeans", "Classic 90s denim.", decimal.NewFromFloat(58.50))
	require.NoError(t, err)
	item.Brand = "Levi's"
	item.Condition = "excellent"
	item.Category = "bottoms"

	items := newMemItemRepo(item)
	records := newMemRecordRepo()
	sellers := &memSellerRepo{sellers: map[uuid.UUID]*domainsub.Seller{sellerID: {ID: sellerID}}}
	subs := &memSubscriptionRepo{subs: map[uuid.UUID]*domainsub.Subscription{
		sellerID: {SellerID: sellerID, Tier: tier},
	}}

	registry := &memRegistry{publishers: make(map[crosspost.PlatformName]crosspost.MarketplacePublisher)}
	for _, platform := range crosspost.AllPlatforms() {
		if !platform.IsHome() {
			registry.publishers[platform] = &stubPublisher{platform: platform}
		}
	}

	gate := appsub.NewGate(subs, domainsub.DefaultEntitlements(), zap.NewNop(), appsub.DefaultGateConfig())
	engine := appcrosspost.NewEngine(items, sellers, records, registry, gate, zap.NewNop(),
		appcrosspost.EngineConfig{PublishTimeout: time.Second})
	service := appcatalog.NewService(items, gate, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewItemHandler(service).RegisterRoutes(api)
	NewCrossPostHandler(engine).RegisterRoutes(api)

	return &apiFixture{
		engine:   router,
		sellerID: sellerID,
		item:     item,
		items:    items,
		records:  records,
	}
}

// do sends a request as the fixture's seller and returns the recorder
func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Seller-ID", f.sellerID.String())

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the standard response envelope
func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object")
	return data
}
