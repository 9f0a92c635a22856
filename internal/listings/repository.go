package listings

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/internal/repo"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/db/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads the catalog from the listings table.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Listings loads every listing in catalog order.
func (r *Repository) Listings(ctx context.Context) ([]Listing, error) {
	var rows []models.Listing
	if err := r.DB(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}

	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		l := fromModel(row)
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog row: %w", err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Upsert writes listings in one transaction, using their slice index as
// catalog position.
func (r *Repository) Upsert(ctx context.Context, listings []Listing) error {
	if len(listings) == 0 {
		return nil
	}
	rows := make([]models.Listing, 0, len(listings))
	for i, l := range listings {
		if err := l.Validate(); err != nil {
			return err
		}
		rows = append(rows, toModel(l, i+1))
	}
	return r.InTx(ctx, func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"position", "name", "image_url", "cuisines", "rating",
					"delivery_low_minutes", "delivery_high_minutes", "updated_at",
				}),
			}).
			CreateInBatches(&rows, r.BatchSize()).Error
	})
}

func fromModel(row models.Listing) Listing {
	return Listing{
		ID:       row.ID,
		Name:     row.Name,
		ImageURL: row.ImageURL,
		Cuisines: append([]string(nil), row.Cuisines...),
		Rating:   row.Rating,
		DeliveryTime: DeliveryTime{
			LowMinutes:  row.DeliveryLowMinutes,
			HighMinutes: row.DeliveryHighMinutes,
		},
	}
}

func toModel(l Listing, position int) models.Listing {
	return models.Listing{
		ID:                  l.ID,
		Position:            position,
		Name:                l.Name,
		ImageURL:            l.ImageURL,
		Cuisines:            types.StringList(append([]string(nil), l.Cuisines...)),
		Rating:              l.Rating,
		DeliveryLowMinutes:  l.DeliveryTime.LowMinutes,
		DeliveryHighMinutes: l.DeliveryTime.HighMinutes,
	}
}
