package usecases

import (
	"context"
	"fmt"

	"marketplace-server/entities"
	"marketplace-server/repositories"
)

type SellUseCase struct {
	sells    repositories.SellRepository
	users    repositories.UserRepository
	products repositories.ProductRepository
}

func NewSellUseCase(sells repositories.SellRepository, users repositories.UserRepository, products repositories.ProductRepository) *SellUseCase {
	return &SellUseCase{sells: sells, users: users, products: products}
}

func (uc *SellUseCase) checkParties(ctx context.Context, s *entities.Sell) error {
	if s.SellerID == "" || s.BuyerID == "" || s.ProductID == "" {
		return fmt.Errorf("%w: seller_id, buyer_id and product_id are required", ErrValidation)
	}
	if s.SellerID == s.BuyerID {
		return fmt.Errorf("%w: seller and buyer must differ", ErrValidation)
	}
	if _, err := uc.users.GetByID(ctx, s.SellerID); err != nil {
		return fmt.Errorf("seller: %w", err)
	}
	if _, err := uc.users.GetByID(ctx, s.BuyerID); err != nil {
		return fmt.Errorf("buyer: %w", err)
	}
	if _, err := uc.products.GetByID(ctx, s.ProductID); err != nil {
		return fmt.Errorf("product: %w", err)
	}
	return nil
}

func (uc *SellUseCase) CreateSell(ctx context.Context, s *entities.Sell) error {
	if err := uc.checkParties(ctx, s); err != nil {
		return err
	}
	return uc.sells.Create(ctx, s)
}

func (uc *SellUseCase) GetSell(ctx context.Context, id string) (*entities.Sell, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: sell id is required", ErrValidation)
	}
	return uc.sells.GetByID(ctx, id)
}

func (uc *SellUseCase) GetAllSells(ctx context.Context) ([]entities.Sell, error) {
	return uc.sells.GetAll(ctx)
}

// UpdateSell merges the non-empty reference ids of changes into the stored sell.
func (uc *SellUseCase) UpdateSell(ctx context.Context, id string, changes entities.Sell) (*entities.Sell, error) {
	existing, err := uc.GetSell(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.SellerID != "" {
		existing.SellerID = changes.SellerID
	}
	if changes.BuyerID != "" {
		existing.BuyerID = changes.BuyerID
	}
	if changes.ProductID != "" {
		existing.ProductID = changes.ProductID
	}
	if err := uc.checkParties(ctx, existing); err != nil {
		return nil, err
	}

	if err := uc.sells.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *SellUseCase) DeleteSell(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: sell id is required", ErrValidation)
	}
	return uc.sells.Delete(ctx, id)
}
