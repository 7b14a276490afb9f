package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"datenight/internal/infra"
	"datenight/internal/models/db_models"
)

type VenueRepository interface {
	// ListByCity returns up to limit venues; an empty city means every city.
	ListByCity(ctx context.Context, city string, limit int) ([]db_models.Venue, error)
	ListPage(ctx context.Context, city string, page, pageSize int) ([]db_models.Venue, error)
	// GetByID accepts the row uuid or the external id. Missing rows return nil, nil.
	GetByID(ctx context.Context, id string) (*db_models.Venue, error)
	// Upsert inserts venues or updates them by external id in one transaction.
	Upsert(ctx context.Context, venues []db_models.Venue) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) scoped(ctx context.Context, city string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&db_models.Venue{})
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	return q
}

func (r *venueRepository) ListByCity(ctx context.Context, city string, limit int) ([]db_models.Venue, error) {
	var venues []db_models.Venue
	err := r.scoped(ctx, city).
		Order("external_id").
		Limit(limit).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("list venues for %q: %w", city, err)
	}
	return venues, nil
}

func (r *venueRepository) ListPage(ctx context.Context, city string, page, pageSize int) ([]db_models.Venue, error) {
	var venues []db_models.Venue
	offset := (page - 1) * pageSize

	err := r.scoped(ctx, city).
		Order("name").
		Offset(offset).
		Limit(pageSize).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("list venue page: %w", err)
	}
	return venues, nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*db_models.Venue, error) {
	var venue db_models.Venue
	q := r.db.WithContext(ctx)
	if parsed, err := uuid.Parse(id); err == nil {
		q = q.Where("id = ?", parsed)
	} else {
		q = q.Where("external_id = ?", id)
	}

	if err := q.First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) Upsert(ctx context.Context, venues []db_models.Venue) error {
	if len(venues) == 0 {
		return nil
	}
	tx := infra.StartTransaction(r.db.WithContext(ctx))
	if tx.Error != nil {
		return tx.Error
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		UpdateAll: true,
	}).CreateInBatches(&venues, 200).Error
	return infra.ReleaseTransaction(tx, err)
}
