package usecases

import (
	"context"
	"fmt"
	"sync"

	"marketplace-server/entities"
	"marketplace-server/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProductCache is an optional read-through cache for single products.
type ProductCache interface {
	Get(ctx context.Context, id string) (*entities.Product, error)
	Set(ctx context.Context, p *entities.Product) error
	Invalidate(ctx context.Context, id string) error
}

type ProductUseCase struct {
	repo  repositories.ProductRepository
	cache ProductCache
	group singleflight.Group
	log   *zap.Logger

	// generation per product id, bumped on every write. A load only fills
	// the cache if no write happened since it started.
	genMu sync.Mutex
	gens  map[string]uint64
}

// NewProductUseCase builds the product use case. cache may be nil.
func NewProductUseCase(repo repositories.ProductRepository, cache ProductCache, log *zap.Logger) *ProductUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductUseCase{repo: repo, cache: cache, log: log, gens: make(map[string]uint64)}
}

func (uc *ProductUseCase) generation(id string) uint64 {
	uc.genMu.Lock()
	defer uc.genMu.Unlock()
	return uc.gens[id]
}

func (uc *ProductUseCase) bump(id string) {
	uc.genMu.Lock()
	uc.gens[id]++
	uc.genMu.Unlock()
}

func validProductState(s string) bool {
	switch s {
	case entities.ProductStatePending, entities.ProductStateAccepted, entities.ProductStateClosed:
		return true
	}
	return false
}

func validProductType(t string) bool {
	return t == entities.ProductTypeComputer || t == entities.ProductTypePieces
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, p *entities.Product) error {
	if p.Title == "" {
		return fmt.Errorf("%w: product title is required", ErrValidation)
	}
	if p.State != "" && !validProductState(p.State) {
		return fmt.Errorf("%w: unknown product state %q", ErrValidation, p.State)
	}
	if p.Type != "" && !validProductType(p.Type) {
		return fmt.Errorf("%w: unknown product type %q", ErrValidation, p.Type)
	}
	return uc.repo.Create(ctx, p)
}

// GetProduct serves from the cache when one is configured; concurrent
// misses for the same id share one database lookup.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if uc.cache == nil {
		return uc.repo.GetByID(ctx, id)
	}

	if p, err := uc.cache.Get(ctx, id); err != nil {
		uc.log.Warn("product cache read failed", zap.String("product_id", id), zap.Error(err))
	} else if p != nil {
		return p, nil
	}

	// The shared load must not fail for every waiter when the first caller
	// goes away.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := uc.group.Do(id, func() (interface{}, error) {
		gen := uc.generation(id)
		p, err := uc.repo.GetByID(loadCtx, id)
		if err != nil {
			return nil, err
		}
		if uc.generation(id) != gen {
			return p, nil
		}
		if err := uc.cache.Set(loadCtx, p); err != nil {
			uc.log.Warn("product cache write failed", zap.String("product_id", id), zap.Error(err))
			return p, nil
		}
		// a write that landed between the check and Set may have deleted
		// the key before this Set re-created it
		if uc.generation(id) != gen {
			uc.dropCached(loadCtx, id)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entities.Product), nil
}

func (uc *ProductUseCase) GetAllProducts(ctx context.Context) ([]entities.Product, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *ProductUseCase) GetProductsBySeller(ctx context.Context, sellerID string) ([]entities.Product, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrValidation)
	}
	return uc.repo.GetBySellerID(ctx, sellerID)
}

// UpdateProduct merges the non-empty fields of changes into the stored product.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, changes entities.Product) (*entities.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Title != "" {
		existing.Title = changes.Title
	}
	if changes.Description != "" {
		existing.Description = changes.Description
	}
	if changes.State != "" {
		if !validProductState(changes.State) {
			return nil, fmt.Errorf("%w: unknown product state %q", ErrValidation, changes.State)
		}
		existing.State = changes.State
	}
	if changes.Type != "" {
		if !validProductType(changes.Type) {
			return nil, fmt.Errorf("%w: unknown product type %q", ErrValidation, changes.Type)
		}
		existing.Type = changes.Type
	}

	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return existing, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// invalidate bumps the product generation so in-flight loads skip the
// cache fill, then drops the cached copy.
func (uc *ProductUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	uc.bump(id)
	uc.group.Forget(id)
	uc.dropCached(ctx, id)
}

func (uc *ProductUseCase) dropCached(ctx context.Context, id string) {
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.log.Warn("product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}
