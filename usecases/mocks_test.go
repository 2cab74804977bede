package usecases

import (
	"context"

	"marketplace-server/entities"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateToken(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p *entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *mockProductRepo) GetAll(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductRepo) GetBySellerID(ctx context.Context, sellerID string) ([]entities.Product, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSellRepo struct{ mock.Mock }

func (m *mockSellRepo) Create(ctx context.Context, s *entities.Sell) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSellRepo) GetByID(ctx context.Context, id string) (*entities.Sell, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Sell), args.Error(1)
}

func (m *mockSellRepo) GetAll(ctx context.Context) ([]entities.Sell, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Sell), args.Error(1)
}

func (m *mockSellRepo) Update(ctx context.Context, s *entities.Sell) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSellRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*entities.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *mockMessageRepo) GetAll(ctx context.Context) ([]entities.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessageRepo) GetByUserID(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessageRepo) GetSentBy(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessageRepo) GetReceivedBy(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(user *entities.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, id string) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, p *entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
