package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace-server/entities"
	"marketplace-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUseCase_CreateProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		product entities.Product
		wantErr bool
	}{
		{name: "defaults left to the store", product: entities.Product{Title: "Laptop"}},
		{name: "explicit state and type", product: entities.Product{Title: "RAM", State: entities.ProductStateAccepted, Type: entities.ProductTypePieces}},
		{name: "missing title", product: entities.Product{}, wantErr: true},
		{name: "unknown state", product: entities.Product{Title: "Laptop", State: "SOLD"}, wantErr: true},
		{name: "unknown type", product: entities.Product{Title: "Laptop", Type: "PHONE"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockProductRepo)
			uc := NewProductUseCase(repo, nil, nil)
			p := tt.product
			if !tt.wantErr {
				repo.On("Create", ctx, &p).Return(nil).Once()
			}

			err := uc.CreateProduct(ctx, &p)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestProductUseCase_GetProduct(t *testing.T) {
	ctx := context.Background()
	laptop := &entities.Product{ID: "p1", Title: "Laptop"}

	t.Run("cache hit skips the store", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		cache.On("Get", ctx, "p1").Return(laptop, nil).Once()
		uc := NewProductUseCase(repo, cache, nil)

		p, err := uc.GetProduct(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, laptop, p)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads through and fills", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		cache.On("Get", ctx, "p1").Return(nil, nil).Once()
		repo.On("GetByID", mock.Anything, "p1").Return(laptop, nil).Once()
		cache.On("Set", mock.Anything, laptop).Return(nil).Once()
		uc := NewProductUseCase(repo, cache, nil)

		p, err := uc.GetProduct(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, "Laptop", p.Title)
		cache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		cache.On("Get", ctx, "p1").Return(nil, errors.New("redis down")).Once()
		repo.On("GetByID", mock.Anything, "p1").Return(laptop, nil).Once()
		cache.On("Set", mock.Anything, laptop).Return(errors.New("redis down")).Once()
		uc := NewProductUseCase(repo, cache, nil)

		p, err := uc.GetProduct(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		cache.On("Get", ctx, "nope").Return(nil, nil).Once()
		repo.On("GetByID", mock.Anything, "nope").Return(nil, repositories.ErrNotFound).Once()
		uc := NewProductUseCase(repo, cache, nil)

		_, err := uc.GetProduct(ctx, "nope")

		assert.ErrorIs(t, err, repositories.ErrNotFound)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("without a cache", func(t *testing.T) {
		repo := new(mockProductRepo)
		repo.On("GetByID", ctx, "p1").Return(laptop, nil).Once()
		uc := NewProductUseCase(repo, nil, nil)

		p, err := uc.GetProduct(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, laptop, p)
	})
}

func TestProductUseCase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update merges and invalidates", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		repo.On("GetByID", ctx, "p1").Return(&entities.Product{ID: "p1", Title: "Laptop", State: entities.ProductStatePending}, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()
		cache.On("Invalidate", ctx, "p1").Return(nil).Once()
		uc := NewProductUseCase(repo, cache, nil)

		p, err := uc.UpdateProduct(ctx, "p1", entities.Product{State: entities.ProductStateClosed})

		require.NoError(t, err)
		assert.Equal(t, "Laptop", p.Title)
		assert.Equal(t, entities.ProductStateClosed, p.State)
		cache.AssertExpectations(t)
	})

	t.Run("update rejects unknown state", func(t *testing.T) {
		repo := new(mockProductRepo)
		repo.On("GetByID", ctx, "p1").Return(&entities.Product{ID: "p1", Title: "Laptop"}, nil).Once()
		uc := NewProductUseCase(repo, nil, nil)

		_, err := uc.UpdateProduct(ctx, "p1", entities.Product{State: "GONE"})

		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		repo.On("Delete", ctx, "p1").Return(nil).Once()
		cache.On("Invalidate", ctx, "p1").Return(nil).Once()
		uc := NewProductUseCase(repo, cache, nil)

		require.NoError(t, uc.DeleteProduct(ctx, "p1"))
		cache.AssertExpectations(t)
	})

	t.Run("failed delete keeps the cache", func(t *testing.T) {
		repo := new(mockProductRepo)
		cache := new(mockCache)
		repo.On("Delete", ctx, "p1").Return(repositories.ErrNotFound).Once()
		uc := NewProductUseCase(repo, cache, nil)

		assert.ErrorIs(t, uc.DeleteProduct(ctx, "p1"), repositories.ErrNotFound)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}

// memoryCache is a ProductCache backed by a map.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]entities.Product
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]entities.Product)}
}

func (c *memoryCache) Get(_ context.Context, id string) (*entities.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memoryCache) Set(_ context.Context, p *entities.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[p.ID] = *p
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

func TestProductUseCase_UpdateDuringCacheMiss(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepo)
	started := make(chan struct{})
	release := make(chan struct{})

	// the first read sees the row as it was before the update
	repo.On("GetByID", mock.Anything, "p1").Return(&entities.Product{ID: "p1", Title: "old"}, nil).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Once()
	// UpdateProduct loads the row it merges into
	repo.On("GetByID", mock.Anything, "p1").Return(&entities.Product{ID: "p1", Title: "old"}, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	// reads after the update see the new row
	repo.On("GetByID", mock.Anything, "p1").Return(&entities.Product{ID: "p1", Title: "new"}, nil)

	cache := newMemoryCache()
	uc := NewProductUseCase(repo, cache, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		p, err := uc.GetProduct(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, "old", p.Title)
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("cache miss never reached the store")
	}

	_, err := uc.UpdateProduct(ctx, "p1", entities.Product{Title: "new"})
	require.NoError(t, err)

	close(release)
	<-done

	cached, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, cached, "a load that raced a write must not fill the cache")

	p, err := uc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "new", p.Title)
}

func TestProductUseCase_CancelledCallerDoesNotFailLoad(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("GetByID", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), "p1").Return(&entities.Product{ID: "p1", Title: "Laptop"}, nil).Once()
	cache := newMemoryCache()
	uc := NewProductUseCase(repo, cache, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := uc.GetProduct(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, "Laptop", p.Title)
	repo.AssertExpectations(t)
}
