package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence/models"
)

// setupCrossPostTestDB creates an in-memory SQLite database for testing
func setupCrossPostTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.CrossPostRecordModel{}))
	return db
}

func newTestRecord(t *testing.T, itemID, sellerID uuid.UUID, platform crosspost.PlatformName) *crosspost.CrossPostRecord {
	t.Helper()
	record, err := crosspost.NewCrossPostRecord(itemID, sellerID, platform)
	require.NoError(t, err)
	return record
}

func TestGormCrossPostRecordRepository_Upsert(t *testing.T) {
	db := setupCrossPostTestDB(t)
	repo := NewGormCrossPostRecordRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	sellerID := uuid.New()
	record := newTestRecord(t, itemID, sellerID, crosspost.PlatformEbay)

	t.Run("insert", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, record))

		found, err := repo.FindByItemAndPlatform(ctx, itemID, crosspost.PlatformEbay)
		require.NoError(t, err)
		assert.Equal(t, record.ID, found.ID)
		assert.Equal(t, crosspost.RecordStatusPending, found.Status)
	})

	t.Run("second write for the same pair overwrites, not appends", func(t *testing.T) {
		record.Apply(crosspost.NewAutomatedResult(crosspost.PlatformEbay, "ext-1", "https://www.ebay.com/itm/ext-1", decimal.NewFromFloat(8.10)))
		require.NoError(t, repo.Upsert(ctx, record))

		found, err := repo.FindByItemAndPlatform(ctx, itemID, crosspost.PlatformEbay)
		require.NoError(t, err)
		assert.Equal(t, crosspost.RecordStatusSuccess, found.Status)
		assert.Equal(t, "ext-1", found.ExternalID)
		assert.Equal(t, 1, found.AttemptCount)

		all, err := repo.FindByItem(ctx, itemID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("different platform creates a second row", func(t *testing.T) {
		depop := newTestRecord(t, itemID, sellerID, crosspost.PlatformDepop)
		require.NoError(t, repo.Upsert(ctx, depop))

		all, err := repo.FindByItem(ctx, itemID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestGormCrossPostRecordRepository_FindByItemAndPlatform_NotFound(t *testing.T) {
	db := setupCrossPostTestDB(t)
	repo := NewGormCrossPostRecordRepository(db)

	_, err := repo.FindByItemAndPlatform(context.Background(), uuid.New(), crosspost.PlatformEbay)
	assert.ErrorIs(t, err, crosspost.ErrRecordNotFound)
}

func TestGormCrossPostRecordRepository_FindFailedBySeller(t *testing.T) {
	db := setupCrossPostTestDB(t)
	repo := NewGormCrossPostRecordRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	failErr := assert.AnError

	// One failed eBay record, one failed Mercari record, one success
	ebayRec := newTestRecord(t, uuid.New(), sellerID, crosspost.PlatformEbay)
	ebayRec.Apply(crosspost.NewFailedResult(crosspost.PlatformEbay, crosspost.ModeAutomated, failErr))
	require.NoError(t, repo.Upsert(ctx, ebayRec))

	mercariRec := newTestRecord(t, uuid.New(), sellerID, crosspost.PlatformMercari)
	mercariRec.Apply(crosspost.NewFailedResult(crosspost.PlatformMercari, crosspost.ModeManualPrepared, failErr))
	require.NoError(t, repo.Upsert(ctx, mercariRec))

	okRec := newTestRecord(t, uuid.New(), sellerID, crosspost.PlatformDepop)
	okRec.Apply(crosspost.NewAutomatedResult(crosspost.PlatformDepop, "d-1", "https://example.com/d-1", decimal.Zero))
	require.NoError(t, repo.Upsert(ctx, okRec))

	// Another seller's failure must not leak in
	otherRec := newTestRecord(t, uuid.New(), uuid.New(), crosspost.PlatformEbay)
	otherRec.Apply(crosspost.NewFailedResult(crosspost.PlatformEbay, crosspost.ModeAutomated, failErr))
	require.NoError(t, repo.Upsert(ctx, otherRec))

	t.Run("all platforms", func(t *testing.T) {
		failed, err := repo.FindFailedBySeller(ctx, sellerID, nil)
		require.NoError(t, err)
		assert.Len(t, failed, 2)
	})

	t.Run("platform filter", func(t *testing.T) {
		filter := crosspost.PlatformMercari
		failed, err := repo.FindFailedBySeller(ctx, sellerID, &filter)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.Equal(t, crosspost.PlatformMercari, failed[0].Platform)
	})
}

func TestGormCrossPostRecordRepository_CountByPlatform(t *testing.T) {
	db := setupCrossPostTestDB(t)
	repo := NewGormCrossPostRecordRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	sellerID := uuid.New()

	record := newTestRecord(t, itemID, sellerID, crosspost.PlatformEbay)
	record.Apply(crosspost.NewFailedResult(crosspost.PlatformEbay, crosspost.ModeAutomated, assert.AnError))
	record.Apply(crosspost.NewAutomatedResult(crosspost.PlatformEbay, "ext-2", "https://example.com/ext-2", decimal.Zero))
	require.NoError(t, repo.Upsert(ctx, record))

	counts, err := repo.CountByPlatform(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[crosspost.PlatformEbay])
}

func TestCrossPostRecordModel_RoundTrip(t *testing.T) {
	retryAt := time.Now().Add(time.Minute).Truncate(time.Second)
	record := &crosspost.CrossPostRecord{
		ID:           uuid.New(),
		ItemID:       uuid.New(),
		SellerID:     uuid.New(),
		Platform:     crosspost.PlatformPoshmark,
		Mode:         crosspost.ModeManualPrepared,
		Status:       crosspost.RecordStatusFailed,
		ErrorMessage: "network down",
		AttemptCount: 3,
		NextRetryAt:  &retryAt,
		PostedAt:     time.Now().Truncate(time.Second),
		UpdatedAt:    time.Now().Truncate(time.Second),
	}

	var model models.CrossPostRecordModel
	model.FromDomain(record)
	back := model.ToDomain()

	assert.Equal(t, record, back)
}
