package accounting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/tally-gateway/pkg/models/api"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/client"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *mockService) TestConnection(ctx context.Context) (domain.ConnectionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConnectionStatus), args.Error(1)
}

func (m *mockService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *mockService) GetLedger(ctx context.Context, name string) (domain.Ledger, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Ledger), args.Error(1)
}

func (m *mockService) LedgerVouchers(ctx context.Context, name string, period domain.Period) ([]domain.Voucher, error) {
	args := m.Called(ctx, name, period)
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *mockService) ListVouchers(ctx context.Context, voucherType string, period domain.Period) ([]domain.Voucher, error) {
	args := m.Called(ctx, voucherType, period)
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *mockService) GetVoucher(ctx context.Context, key string) (domain.Voucher, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Voucher), args.Error(1)
}

func (m *mockService) ListStock(ctx context.Context) ([]domain.StockItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *mockService) GetStockItem(ctx context.Context, name string) (domain.StockItem, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.StockItem), args.Error(1)
}

func (m *mockService) Outstanding(ctx context.Context, period domain.Period) ([]domain.OutstandingBill, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]domain.OutstandingBill), args.Error(1)
}

func (m *mockService) TrialBalance(ctx context.Context, period domain.Period) ([]domain.TrialBalanceGroup, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]domain.TrialBalanceGroup), args.Error(1)
}

func (m *mockService) CreateSalesOrder(ctx context.Context, order domain.SalesOrder) (domain.ImportResult, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.ImportResult), args.Error(1)
}

type listBody[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count"`
	Error   string `json:"error"`
}

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestListLedgers(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockService)
		expectedStatus int
		expectedBody   []api.Ledger
		expectedError  string
	}{
		{
			name: "successful response",
			setupMock: func(m *mockService) {
				m.On("ListLedgers", mock.Anything).Return([]domain.Ledger{
					{Name: "Cash", Parent: "Cash-in-Hand", ClosingBalance: decimal.RequireFromString("-250.75"), Vouchers: []domain.Voucher{}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: []api.Ledger{
				{Name: "Cash", Parent: "Cash-in-Hand", ClosingBalance: -250.75, Vouchers: []api.Voucher{}},
			},
		},
		{
			name: "empty ledger list",
			setupMock: func(m *mockService) {
				m.On("ListLedgers", mock.Anything).Return([]domain.Ledger{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []api.Ledger{},
		},
		{
			name: "tally unreachable",
			setupMock: func(m *mockService) {
				m.On("ListLedgers", mock.Anything).Return([]domain.Ledger(nil),
					fmt.Errorf("failed to list ledgers: %w", &client.ConnectionError{Addr: "localhost:9000", Err: errors.New("refused")}))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "cannot connect to Tally at localhost:9000",
		},
		{
			name: "tally business error",
			setupMock: func(m *mockService) {
				m.On("ListLedgers", mock.Anything).Return([]domain.Ledger(nil),
					fmt.Errorf("failed to list ledgers: %w", &domain.RemoteError{Message: "Could not find Company"}))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Could not find Company",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			h := NewHandler(svc, "Demo")

			req := httptest.NewRequest(http.MethodGet, "/ledgers", nil)
			rec := httptest.NewRecorder()

			h.ListLedgers(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode[listBody[[]api.Ledger]](t, rec)
			if tt.expectedError != "" {
				assert.False(t, body.Success)
				assert.Contains(t, body.Error, tt.expectedError)
				assert.NotContains(t, body.Error, "failed to list ledgers")
			} else {
				assert.True(t, body.Success)
				assert.Equal(t, tt.expectedBody, body.Data)
				require.NotNil(t, body.Count)
				assert.Equal(t, len(tt.expectedBody), *body.Count)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetLedger(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mockService)
		expectedStatus int
	}{
		{
			name: "escaped ampersand",
			path: "/ledgers/Acme%20%26%20Sons",
			setupMock: func(m *mockService) {
				m.On("GetLedger", mock.Anything, "Acme & Sons").Return(domain.Ledger{Name: "Acme & Sons"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "percent sign",
			path: "/ledgers/Output%20CGST%209%25",
			setupMock: func(m *mockService) {
				m.On("GetLedger", mock.Anything, "Output CGST 9%").Return(domain.Ledger{Name: "Output CGST 9%"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/ledgers/Nobody",
			setupMock: func(m *mockService) {
				m.On("GetLedger", mock.Anything, "Nobody").Return(domain.Ledger{},
					&domain.NotFoundError{Resource: "ledger", Key: "Nobody"})
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "blank name",
			path:           "/ledgers/%20",
			setupMock:      func(*mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			router := chi.NewRouter()
			NewHandler(svc, "Demo").Routes(router)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestStockAndVoucherParams(t *testing.T) {
	svc := new(mockService)
	svc.On("GetStockItem", mock.Anything, "Bolt 5% Zinc").Return(domain.StockItem{Name: "Bolt 5% Zinc"}, nil)
	svc.On("GetVoucher", mock.Anything, "INV/1 & 2").Return(domain.Voucher{Key: "INV/1 & 2"}, nil)
	router := chi.NewRouter()
	NewHandler(svc, "Demo").Routes(router)

	for _, path := range []string{"/stock/Bolt%205%25%20Zinc", "/vouchers/INV%2F1%20%26%202"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	svc.AssertExpectations(t)
}

func TestListVouchers_Period(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		query          string
		setupMock      func(*mockService)
		expectedStatus int
	}{
		{
			name:  "both layouts",
			query: "?type=Sales&fromDate=20250401&toDate=2025-04-30",
			setupMock: func(m *mockService) {
				m.On("ListVouchers", mock.Anything, "Sales", domain.Period{From: from, To: to}).
					Return([]domain.Voucher{{Key: "k-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "no period",
			query: "",
			setupMock: func(m *mockService) {
				m.On("ListVouchers", mock.Anything, "", domain.Period{}).Return([]domain.Voucher{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unparseable date",
			query:          "?fromDate=01-04-2025",
			setupMock:      func(*mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "reversed period",
			query:          "?fromDate=20250430&toDate=20250401",
			setupMock:      func(*mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			h := NewHandler(svc, "Demo")

			req := httptest.NewRequest(http.MethodGet, "/vouchers"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.ListVouchers(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestVoucherPDF(t *testing.T) {
	svc := new(mockService)
	svc.On("GetVoucher", mock.Anything, "k-1").Return(domain.Voucher{
		Key:    "k-1",
		Number: "INV/1",
		Type:   "Sales",
		Date:   "2025-04-01",
		Party:  "Acme",
		Amount: decimal.RequireFromString("118"),
	}, nil)
	h := NewHandler(svc, "Demo")

	req := withParam(httptest.NewRequest(http.MethodGet, "/vouchers/k-1/pdf", nil), "vchkey", "k-1")
	rec := httptest.NewRecorder()

	h.VoucherPDF(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "voucher-INV_1.pdf")
	assert.Equal(t, "%PDF-", rec.Body.String()[:5])
}

func TestTestConnection(t *testing.T) {
	svc := new(mockService)
	svc.On("TestConnection", mock.Anything).Return(domain.ConnectionStatus{
		Connected: true,
		Companies: 2,
		Latency:   15 * time.Millisecond,
	}, nil)
	h := NewHandler(svc, "Demo")

	req := httptest.NewRequest(http.MethodGet, "/companies/test", nil)
	rec := httptest.NewRecorder()

	h.TestConnection(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[listBody[api.ConnectionStatus]](t, rec)
	assert.Equal(t, api.ConnectionStatus{Connected: true, Companies: 2, LatencyMs: 15}, body.Data)
	assert.Nil(t, body.Count)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Acme___Sons", fileName("Acme & Sons"))
	assert.Equal(t, "INV-1_2025", fileName("INV-1/2025"))
}
