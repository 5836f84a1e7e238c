// Package crosspost contains the cross-posting engine: the orchestrator
// that fans an item out to the requested marketplaces, records every
// outcome in the ledger, and keeps the item's published set consistent
// with it.
package crosspost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appsub "github.com/vintagecrib/backend/internal/application/subscription"
	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
	domainsub "github.com/vintagecrib/backend/internal/domain/subscription"
)

var (
	// ErrNoPlatforms indicates an empty platform list
	ErrNoPlatforms = errors.New("crosspost: no platforms requested")
	// ErrNotItemOwner indicates the item belongs to a different seller
	ErrNotItemOwner = errors.New("crosspost: item does not belong to seller")
)

// homeListingURLFormat is the public listing URL on the home platform
const homeListingURLFormat = "https://vintagecrib.com/listings/%s"

// EngineConfig contains configuration for the Engine
type EngineConfig struct {
	// PublishTimeout bounds each platform's publish attempt. A timed-out
	// attempt is recorded as failed, never left pending.
	PublishTimeout time.Duration
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{PublishTimeout: 30 * time.Second}
}

// Engine orchestrates cross-posting: entitlement gating, concurrent
// per-platform publishing with failure isolation, ledger upserts, and the
// publishedTo write-back.
type Engine struct {
	items    catalog.ItemRepository
	sellers  domainsub.SellerRepository
	records  crosspost.CrossPostRecordRepository
	registry crosspost.PublisherRegistry
	gate     *appsub.Gate
	logger   *zap.Logger

	publishTimeout time.Duration

	// itemLocks serializes the publishedTo read-modify-write per item so
	// concurrent PublishToAll calls on the same item cannot lose a platform
	itemLocks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewEngine creates a new Engine
func NewEngine(
	items catalog.ItemRepository,
	sellers domainsub.SellerRepository,
	records crosspost.CrossPostRecordRepository,
	registry crosspost.PublisherRegistry,
	gate *appsub.Gate,
	logger *zap.Logger,
	config EngineConfig,
) *Engine {
	timeout := config.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultEngineConfig().PublishTimeout
	}
	return &Engine{
		items:          items,
		sellers:        sellers,
		records:        records,
		registry:       registry,
		gate:           gate,
		logger:         logger,
		publishTimeout: timeout,
	}
}

// ---------------------------------------------------------------------------
// PublishToAll
// ---------------------------------------------------------------------------

// PublishToAll publishes one item to the requested platforms. Structural
// problems (unknown platform name, missing item or seller) reject the whole
// call before any platform is contacted; per-platform failures are isolated,
// recorded in the ledger, and surfaced in the aggregate result.
func (e *Engine) PublishToAll(ctx context.Context, itemID, sellerID uuid.UUID, platformNames []string) (*AggregateResult, error) {
	platforms, err := crosspost.ParsePlatforms(platformNames)
	if err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		return nil, ErrNoPlatforms
	}

	item, err := e.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != sellerID {
		return nil, ErrNotItemOwner
	}

	if _, err := e.sellers.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}

	check, err := e.gate.CheckPlatforms(ctx, sellerID, platforms)
	if err != nil {
		return nil, err
	}

	e.logger.Info("publishing item",
		zap.String("item_id", itemID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.Int("requested", len(platforms)),
		zap.Int("denied", len(check.Denied)),
	)

	results := e.publishSet(ctx, item, check.Allowed)

	publishedTo, err := e.writeBackPublishState(ctx, itemID)
	if err != nil {
		// The ledger already holds the truth; surface the write-back
		// failure without discarding the per-platform outcomes.
		e.logger.Error("failed to write back publish state",
			zap.String("item_id", itemID.String()),
			zap.Error(err),
		)
	}

	agg := &AggregateResult{
		Results:         results,
		TotalRequested:  len(platforms),
		DeniedPlatforms: check.Denied,
		PublishedTo:     publishedTo,
	}
	for _, r := range results {
		if r.Success {
			agg.Success = true
			agg.PublishedCount++
		}
	}
	return agg, nil
}

// ---------------------------------------------------------------------------
// RetryFailed
// ---------------------------------------------------------------------------

// RetryFailed re-attempts every failed ledger record across the seller's
// items, optionally filtered to one platform. Only records whose backoff
// window has elapsed are re-run. Outcomes are ordered by item ID. With zero
// failed records it returns an empty result set and performs no writes.
func (e *Engine) RetryFailed(ctx context.Context, sellerID uuid.UUID, platformFilter *crosspost.PlatformName) ([]RetryOutcome, error) {
	if platformFilter != nil && !platformFilter.IsValid() {
		return nil, fmt.Errorf("%w: %q", crosspost.ErrInvalidPlatform, platformFilter.String())
	}

	failed, err := e.records.FindFailedBySeller(ctx, sellerID, platformFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byItem := make(map[uuid.UUID][]crosspost.PlatformName)
	for _, record := range failed {
		if record.RetryEligible(now) {
			byItem[record.ItemID] = append(byItem[record.ItemID], record.Platform)
		}
	}
	if len(byItem) == 0 {
		return []RetryOutcome{}, nil
	}

	// Stable outcome order across calls: items sorted by ID
	itemIDs := make([]uuid.UUID, 0, len(byItem))
	for itemID := range byItem {
		itemIDs = append(itemIDs, itemID)
	}
	slices.SortFunc(itemIDs, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	outcomes := make([]RetryOutcome, 0, len(failed))
	for _, itemID := range itemIDs {
		platforms := byItem[itemID]
		item, err := e.items.FindByID(ctx, itemID)
		if err != nil {
			e.logger.Warn("skipping retry for missing item",
				zap.String("item_id", itemID.String()),
				zap.Error(err),
			)
			continue
		}

		results := e.publishSet(ctx, item, platforms)
		if _, err := e.writeBackPublishState(ctx, itemID); err != nil {
			e.logger.Error("failed to write back publish state after retry",
				zap.String("item_id", itemID.String()),
				zap.Error(err),
			)
		}
		for _, result := range results {
			outcomes = append(outcomes, RetryOutcome{ItemID: itemID, Result: result})
		}
	}
	return outcomes, nil
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// Ledger returns the item's current ledger records and attempt counts
func (e *Engine) Ledger(ctx context.Context, itemID uuid.UUID) (*LedgerStatus, error) {
	if _, err := e.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	records, err := e.records.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	attempts, err := e.records.CountByPlatform(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &LedgerStatus{ItemID: itemID, Records: records, AttemptsByPlatform: attempts}, nil
}

// ---------------------------------------------------------------------------
// Fan-out
// ---------------------------------------------------------------------------

// publishSet runs one publish attempt per platform concurrently, joins on
// all of them, and upserts a ledger record per outcome. One platform's
// failure never aborts or affects another's attempt.
func (e *Engine) publishSet(ctx context.Context, item *catalog.Item, platforms []crosspost.PlatformName) map[crosspost.PlatformName]crosspost.PublishResult {
	ordered := make([]crosspost.PublishResult, len(platforms))

	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(i int, platform crosspost.PlatformName) {
			defer wg.Done()
			ordered[i] = e.publishOne(ctx, item, platform)
		}(i, platform)
	}
	wg.Wait()

	results := make(map[crosspost.PlatformName]crosspost.PublishResult, len(platforms))
	for _, result := range ordered {
		results[result.Platform] = result
		e.recordOutcome(ctx, item, result)
	}
	return results
}

// publishOne performs a single platform attempt with its own timeout. All
// failure paths, including panics inside a publisher, fold into a failed
// result so siblings are never disturbed.
func (e *Engine) publishOne(ctx context.Context, item *catalog.Item, platform crosspost.PlatformName) (result crosspost.PublishResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("publisher panicked",
				zap.String("platform", platform.String()),
				zap.Any("panic", r),
			)
			result = crosspost.NewFailedResult(platform, platform.DefaultMode(),
				fmt.Errorf("%w: publisher panic: %v", crosspost.ErrPublishRequestFailed, r))
		}
	}()

	if platform.IsHome() {
		// The home platform is a direct status flip; no formatting, no
		// publisher.
		return crosspost.NewAutomatedResult(
			platform,
			item.ID.String(),
			fmt.Sprintf(homeListingURLFormat, item.ID),
			decimal.Zero,
		)
	}

	payload, err := crosspost.Format(item.Details(), platform)
	if err != nil {
		return crosspost.NewFailedResult(platform, platform.DefaultMode(), err)
	}

	publisher, err := e.registry.Get(platform)
	if err != nil {
		return crosspost.NewFailedResult(platform, platform.DefaultMode(), err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, e.publishTimeout)
	defer cancel()

	result, err = publisher.Publish(attemptCtx, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", crosspost.ErrPublishTimeout, err)
		}
		return crosspost.NewFailedResult(platform, publisher.Mode(), err)
	}
	return result
}

// recordOutcome upserts the current ledger record for the attempted pair
func (e *Engine) recordOutcome(ctx context.Context, item *catalog.Item, result crosspost.PublishResult) {
	record, err := e.records.FindByItemAndPlatform(ctx, item.ID, result.Platform)
	if err != nil {
		if !errors.Is(err, crosspost.ErrRecordNotFound) {
			e.logger.Error("failed to load ledger record",
				zap.String("item_id", item.ID.String()),
				zap.String("platform", result.Platform.String()),
				zap.Error(err),
			)
			return
		}
		record, err = crosspost.NewCrossPostRecord(item.ID, item.SellerID, result.Platform)
		if err != nil {
			e.logger.Error("failed to create ledger record", zap.Error(err))
			return
		}
	}

	record.Apply(result)
	if err := e.records.Upsert(ctx, record); err != nil {
		e.logger.Error("failed to upsert ledger record",
			zap.String("item_id", item.ID.String()),
			zap.String("platform", result.Platform.String()),
			zap.Error(err),
		)
	}
}

// ---------------------------------------------------------------------------
// Write-back
// ---------------------------------------------------------------------------

// writeBackPublishState recomputes the item's published set as the union of
// successful ledger records and persists it, exactly once per call, after
// the fan-out join. The per-item lock makes the read-modify-write safe
// against concurrent calls on the same item.
func (e *Engine) writeBackPublishState(ctx context.Context, itemID uuid.UUID) ([]crosspost.PlatformName, error) {
	lock := e.lockItem(itemID)
	lock.Lock()
	defer lock.Unlock()

	records, err := e.records.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	successes := make(map[crosspost.PlatformName]bool, len(records))
	for _, record := range records {
		if record.Status == crosspost.RecordStatusSuccess {
			successes[record.Platform] = true
		}
	}
	// Stable platform order keeps the persisted set deterministic
	publishedTo := make([]crosspost.PlatformName, 0, len(successes))
	for _, platform := range crosspost.AllPlatforms() {
		if successes[platform] {
			publishedTo = append(publishedTo, platform)
		}
	}

	item, err := e.items.FindByID(ctx, itemID)
	if err != nil {
		return publishedTo, err
	}
	item.SetPublishState(publishedTo)
	if err := e.items.Save(ctx, item); err != nil {
		return publishedTo, err
	}
	return publishedTo, nil
}

func (e *Engine) lockItem(itemID uuid.UUID) *sync.Mutex {
	actual, _ := e.itemLocks.LoadOrStore(itemID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
