package repositories

import (
	"context"

	"marketplace-server/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetAll(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id string) (*entities.Product, error)
	GetAll(ctx context.Context) ([]entities.Product, error)
	GetBySellerID(ctx context.Context, sellerID string) ([]entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id string) error
}

type SellRepository interface {
	Create(ctx context.Context, sell *entities.Sell) error
	GetByID(ctx context.Context, id string) (*entities.Sell, error)
	GetAll(ctx context.Context) ([]entities.Sell, error)
	Update(ctx context.Context, sell *entities.Sell) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository stores chat messages. Create returns the canonical
// record with its id, timestamp, sender and receiver filled in.
type MessageRepository interface {
	Create(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error)
	GetByID(ctx context.Context, id string) (*entities.Message, error)
	GetAll(ctx context.Context) ([]entities.Message, error)
	GetByUserID(ctx context.Context, userID string) ([]entities.Message, error)
	GetSentBy(ctx context.Context, userID string) ([]entities.Message, error)
	GetReceivedBy(ctx context.Context, userID string) ([]entities.Message, error)
	Delete(ctx context.Context, id string) error
}
