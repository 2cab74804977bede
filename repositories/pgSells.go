package repositories

import (
	"context"

	"marketplace-server/db"
	"marketplace-server/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sellPgRepository struct {
	db db.Database
}

func NewSellPgRepository(database db.Database) SellRepository {
	return &sellPgRepository{db: database}
}

func (r *sellPgRepository) withParties(ctx context.Context) *gorm.DB {
	return r.db.GetDB().WithContext(ctx).Preload("Seller").Preload("Buyer").Preload("Product")
}

func (r *sellPgRepository) Create(ctx context.Context, sell *entities.Sell) error {
	return translate(r.db.GetDB().WithContext(ctx).Omit(clause.Associations).Create(sell).Error)
}

func (r *sellPgRepository) GetByID(ctx context.Context, id string) (*entities.Sell, error) {
	var sell entities.Sell
	err := r.withParties(ctx).Where("id = ?", id).First(&sell).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sell, nil
}

func (r *sellPgRepository) GetAll(ctx context.Context) ([]entities.Sell, error) {
	var sells []entities.Sell
	err := r.withParties(ctx).Order("created_at DESC").Find(&sells).Error
	return sells, translate(err)
}

func (r *sellPgRepository) Update(ctx context.Context, sell *entities.Sell) error {
	return translate(r.db.GetDB().WithContext(ctx).Omit(clause.Associations).Save(sell).Error)
}

func (r *sellPgRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Sell{}))
}
