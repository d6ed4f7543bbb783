package favorites

import (
	"context"
	"time"

	"github.com/lyvest/lyvest-backend/pkg/types"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteItem is the remote store row. Product identifiers stored here are
// always UUID strings.
type FavoriteItem struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	ProductID string    `gorm:"column:product_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (FavoriteItem) TableName() string {
	return "favorite_items"
}

// Repository implements RemoteStore over the hosted favorites table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all favorite product ids for a user in insertion order.
func (r *Repository) List(ctx context.Context, userID string) ([]types.ProductID, error) {
	var rows []FavoriteItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	ids := make([]types.ProductID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, types.ProductID(row.ProductID))
	}
	return ids, nil
}

// Insert adds a favorite and ignores duplicates.
func (r *Repository) Insert(ctx context.Context, userID string, productID types.ProductID) error {
	if userID == "" || !productID.RemoteShaped() {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FavoriteItem{UserID: userID, ProductID: productID.String(), CreatedAt: time.Now().UTC()}).
		Error
}

// InsertBatch adds each favorite, collecting per-row failures instead of
// stopping at the first one.
func (r *Repository) InsertBatch(ctx context.Context, userID string, productIDs []types.ProductID) error {
	var errs error
	for _, id := range productIDs {
		if err := r.Insert(ctx, userID, id); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Delete drops the favorite if it exists.
func (r *Repository) Delete(ctx context.Context, userID string, productID types.ProductID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID.String()).
		Delete(&FavoriteItem{}).
		Error
}
