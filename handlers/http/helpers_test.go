package httpHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-server/entities"
	"marketplace-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for AuthMiddleware in handler tests.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, id)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Register(ctx context.Context, in usecases.RegisterInput) (*entities.User, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entities.User), args.String(1), args.Error(2)
}

func (m *mockUsers) GetUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUsers) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUsers) UpdateUser(ctx context.Context, id string, changes entities.User) (*entities.User, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUsers) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) CreateProduct(ctx context.Context, p *entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *mockProducts) GetAllProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProducts) GetProductsBySeller(ctx context.Context, sellerID string) ([]entities.Product, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProducts) UpdateProduct(ctx context.Context, id string, changes entities.Product) (*entities.Product, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *mockProducts) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSells struct{ mock.Mock }

func (m *mockSells) CreateSell(ctx context.Context, s *entities.Sell) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSells) GetSell(ctx context.Context, id string) (*entities.Sell, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Sell), args.Error(1)
}

func (m *mockSells) GetAllSells(ctx context.Context) ([]entities.Sell, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Sell), args.Error(1)
}

func (m *mockSells) UpdateSell(ctx context.Context, id string, changes entities.Sell) (*entities.Sell, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Sell), args.Error(1)
}

func (m *mockSells) DeleteSell(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessages struct{ mock.Mock }

func (m *mockMessages) GetMessage(ctx context.Context, id string) (*entities.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *mockMessages) GetAllMessages(ctx context.Context) ([]entities.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessages) GetUserMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessages) GetSentMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessages) GetReceivedMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Message), args.Error(1)
}

func (m *mockMessages) DeleteMessage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
