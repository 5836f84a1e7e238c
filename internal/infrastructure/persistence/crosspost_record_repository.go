package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence/models"
)

// GormCrossPostRecordRepository implements CrossPostRecordRepository using GORM
type GormCrossPostRecordRepository struct {
	db *gorm.DB
}

// NewGormCrossPostRecordRepository creates a new GormCrossPostRecordRepository
func NewGormCrossPostRecordRepository(db *gorm.DB) *GormCrossPostRecordRepository {
	return &GormCrossPostRecordRepository{db: db}
}

// Upsert writes the current record for its (item, platform) pair. The
// unique index on the pair makes retries overwrite rather than append.
func (r *GormCrossPostRecordRepository) Upsert(ctx context.Context, record *crosspost.CrossPostRecord) error {
	var model models.CrossPostRecordModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mode", "external_id", "external_url", "status",
			"error_message", "attempt_count", "next_retry_at", "updated_at",
		}),
	}).Create(&model).Error
}

// FindByItem returns every record for the item
func (r *GormCrossPostRecordRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]crosspost.CrossPostRecord, error) {
	var rows []models.CrossPostRecordModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("platform").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(rows), nil
}

// FindByItemAndPlatform returns the record for one pair, or ErrRecordNotFound
func (r *GormCrossPostRecordRepository) FindByItemAndPlatform(ctx context.Context, itemID uuid.UUID, platform crosspost.PlatformName) (*crosspost.CrossPostRecord, error) {
	var model models.CrossPostRecordModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND platform = ?", itemID, platform.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, crosspost.ErrRecordNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindFailedBySeller returns the seller's failed records across all items,
// optionally filtered to one platform
func (r *GormCrossPostRecordRepository) FindFailedBySeller(ctx context.Context, sellerID uuid.UUID, platform *crosspost.PlatformName) ([]crosspost.CrossPostRecord, error) {
	query := r.db.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, string(crosspost.RecordStatusFailed))
	if platform != nil {
		query = query.Where("platform = ?", platform.String())
	}

	var rows []models.CrossPostRecordModel
	if err := query.Order("updated_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(rows), nil
}

// CountByPlatform returns the attempt count per platform for the item
func (r *GormCrossPostRecordRepository) CountByPlatform(ctx context.Context, itemID uuid.UUID) (map[crosspost.PlatformName]int, error) {
	var rows []models.CrossPostRecordModel
	if err := r.db.WithContext(ctx).
		Select("platform", "attempt_count").
		Where("item_id = ?", itemID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[crosspost.PlatformName]int, len(rows))
	for _, row := range rows {
		counts[crosspost.PlatformName(row.Platform)] = row.AttemptCount
	}
	return counts, nil
}

func toDomainRecords(rows []models.CrossPostRecordModel) []crosspost.CrossPostRecord {
	records := make([]crosspost.CrossPostRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records
}

// Ensure GormCrossPostRecordRepository implements CrossPostRecordRepository interface
var _ crosspost.CrossPostRecordRepository = (*GormCrossPostRecordRepository)(nil)
