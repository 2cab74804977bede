package repositories

import (
	"context"
	"time"

	"marketplace-server/db"
	"marketplace-server/entities"
)

type productPgRepository struct {
	db db.Database
}

func NewProductPgRepository(database db.Database) ProductRepository {
	return &productPgRepository{db: database}
}

func (r *productPgRepository) Create(ctx context.Context, product *entities.Product) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(product).Error)
}

func (r *productPgRepository) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productPgRepository) GetAll(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.GetDB().WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, translate(err)
}

func (r *productPgRepository) GetBySellerID(ctx context.Context, sellerID string) ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.GetDB().WithContext(ctx).Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	return products, translate(err)
}

func (r *productPgRepository) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return translate(r.db.GetDB().WithContext(ctx).Save(product).Error)
}

func (r *productPgRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}))
}
