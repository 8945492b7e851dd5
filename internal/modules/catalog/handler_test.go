package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salonagenda/internal/domain"
	"salonagenda/internal/modules/booking"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func doRequest(t *testing.T, r *gin.Engine, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestListServices(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListActive", mock.Anything).Return([]domain.Service{
		{ID: 1, Name: "Corte", DurationMinutes: 30, Price: decimal.RequireFromString("50"), Active: true},
	}, nil)

	code, env := doRequest(t, setupRouter(repo), "/api/v1/services")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	var data struct {
		Services []ServiceResponse `json:"services"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Services, 1)
	assert.Equal(t, "50.00", data.Services[0].Price)
	assert.Equal(t, 30, data.Services[0].Duration)
	repo.AssertExpectations(t)
}

func TestListServices_EmptyIsArray(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListActive", mock.Anything).Return(nil, nil)

	code, env := doRequest(t, setupRouter(repo), "/api/v1/services")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"services":[]}`, string(env.Data))
}

func TestGetService(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, int64(7)).Return(
		&domain.Service{ID: 7, Name: "Manicure", DurationMinutes: 45, Price: decimal.RequireFromString("35.5"), Active: true}, nil)
	repo.On("GetService", mock.Anything, int64(8)).Return(nil, fmt.Errorf("%w: 8", booking.ErrServiceNotFound))
	repo.On("GetService", mock.Anything, int64(9)).Return(nil, errors.New("db down"))
	r := setupRouter(repo)

	code, env := doRequest(t, r, "/api/v1/services/7")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"price":"35.50"`)

	code, env = doRequest(t, r, "/api/v1/services/8")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SERVICE_NOT_FOUND", env.Error.Code)

	code, _ = doRequest(t, r, "/api/v1/services/9")
	assert.Equal(t, http.StatusInternalServerError, code)

	code, env = doRequest(t, r, "/api/v1/services/abc")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}
