package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/httpapi"
	"github.com/nikolayk812/vatmoss/internal/moss"
	"github.com/nikolayk812/vatmoss/internal/ratetype"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

// orderStub serves a fixed set of orders and keeps markers in memory.
type orderStub struct {
	orders map[int64]domain.Order
}

func (s *orderStub) FetchOrders(_ context.Context, filter domain.ReportFilter) ([]domain.Order, []domain.SkippedOrder, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}

	var result []domain.Order
	for _, id := range lo.Keys(s.orders) {
		o := s.orders[id]
		if o.CompletedAt.Before(filter.Start) || o.CompletedAt.After(filter.End) {
			continue
		}
		if filter.MarkerPredicate() == domain.MarkerAbsent && o.IsSubmitted() {
			continue
		}
		result = append(result, o)
	}
	return result, nil, nil
}

func (s *orderStub) GetOrdersByIDs(_ context.Context, ids []int64) ([]domain.Order, []domain.SkippedOrder, error) {
	var (
		orders  []domain.Order
		skipped []domain.SkippedOrder
	)
	for _, id := range ids {
		o, ok := s.orders[id]
		if !ok {
			skipped = append(skipped, domain.SkippedOrder{OrderID: id, Reason: domain.ErrNotFound.Error()})
			continue
		}
		orders = append(orders, o)
	}
	return orders, skipped, nil
}

func (s *orderStub) InsertOrder(_ context.Context, order domain.Order) (int64, error) {
	s.orders[order.ID] = order
	return order.ID, nil
}

func (s *orderStub) SetSubmissionMarker(_ context.Context, orderID int64, marker domain.SubmissionMarker) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Submission = &marker
	s.orders[orderID] = o
	return nil
}

func (s *orderStub) ClearSubmissionMarker(_ context.Context, orderID int64) error {
	if o, ok := s.orders[orderID]; ok {
		o.Submission = nil
		s.orders[orderID] = o
	}
	return nil
}

type handlerSuite struct {
	suite.Suite

	server *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

// before each test
func (suite *handlerSuite) SetupTest() {
	t := suite.T()

	productID := uuid.New()

	store := &orderStub{orders: map[int64]domain.Order{
		1: {
			ID:           1,
			PurchaseKey:  "pk-1",
			Status:       domain.OrderStatusCompleted,
			BuyerCountry: "FR",
			Currency:     currency.EUR,
			CompletedAt:  lo.ToPtr(time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC)),
			Items: []domain.LineItem{{
				ProductID: productID,
				Price:     decimal.RequireFromString("10.00"),
				Tax:       decimal.RequireFromString("2.00"),
				VatRate:   lo.ToPtr(decimal.RequireFromString("0.2")),
				Fees:      []domain.FeeAdjustment{{Amount: decimal.RequireFromString("-1.00")}},
			}},
		},
	}}

	static := ratetype.Static{Classes: map[uuid.UUID]domain.TaxClass{productID: domain.TaxClassStandard}}

	region, err := domain.NewRegion(domain.EUMemberStates)
	require.NoError(t, err)

	applicability, err := moss.NewApplicability("DE", region)
	require.NoError(t, err)

	integration, err := moss.NewIntegration("pg", store, moss.NewResolver(static, static, static, nil), applicability, nil,
		moss.WithName("Postgres order store"))
	require.NoError(t, err)

	registry, err := moss.NewRegistry(integration)
	require.NoError(t, err)

	handler, err := httpapi.NewHandler(registry, nil)
	require.NoError(t, err)

	suite.server = httptest.NewServer(httpapi.NewRouter(handler))
}

// after each test
func (suite *handlerSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *handlerSuite) do(method, path string, body any) (*http.Response, []byte) {
	t := suite.T()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, suite.server.URL+path, &reader)
	require.NoError(t, err)

	resp, err := suite.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, buf.Bytes()
}

func (suite *handlerSuite) TestListSources() {
	t := suite.T()

	resp, body := suite.do(http.MethodGet, "/sources", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sources []httpapi.SourceResponse
	require.NoError(t, json.Unmarshal(body, &sources))
	require.Len(t, sources, 1)
	assert.Equal(t, "pg", sources[0].Source)
	assert.Equal(t, "Postgres order store", sources[0].Name)
	assert.Equal(t, "Reduced", sources[0].RateTypes["reduced"])
}

func (suite *handlerSuite) TestGetRecords() {
	t := suite.T()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCount  int
	}{
		{
			name:       "records in range: ok",
			path:       "/sources/pg/records?start=2024-01-01&end=2024-03-31",
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "end date is inclusive: ok",
			path:       "/sources/pg/records?start=2024-02-10&end=2024-02-10",
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "nothing in range: ok",
			path:       "/sources/pg/records?start=2024-04-01&end=2024-06-30",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing start: bad request",
			path:       "/sources/pg/records?end=2024-03-31",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "end before start: bad request",
			path:       "/sources/pg/records?start=2024-03-31&end=2024-01-01",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad flag: bad request",
			path:       "/sources/pg/records?start=2024-01-01&end=2024-03-31&include_submitted=maybe",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown source: not found",
			path:       "/sources/shop/records?start=2024-01-01&end=2024-03-31",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			resp, body := suite.do(http.MethodGet, tt.path, nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			if tt.wantStatus != http.StatusOK {
				var errResp httpapi.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &errResp))
				assert.Equal(t, "error", errResp.Status)
				assert.NotEmpty(t, errResp.Messages)
				return
			}

			var records httpapi.RecordsResponse
			require.NoError(t, json.Unmarshal(body, &records))
			assert.Equal(t, "success", records.Status)
			require.Len(t, records.Records, tt.wantCount)

			if tt.wantCount > 0 {
				r := records.Records[0]
				assert.Equal(t, "7.00", r.Net)
				assert.Equal(t, "2.00", r.Tax)
				assert.Equal(t, "0.200", r.VatRate)
				assert.Equal(t, "reduced", r.VatType)
				assert.Equal(t, "FR", r.CountryCode)
				assert.Equal(t, "EUR", r.CurrencyCode)
				assert.True(t, r.First)
				assert.Nil(t, r.SubmissionID)
			}
		})
	}
}

func (suite *handlerSuite) TestSubmissionLifecycle() {
	t := suite.T()

	resp, body := suite.do(http.MethodPost, "/sources/pg/submissions", httpapi.MarkRequest{OrderIDs: []int64{1}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, body = suite.do(http.MethodPost, "/sources/pg/submissions", httpapi.MarkRequest{
		SubmissionID:  "77",
		CorrelationID: "corr1",
		OrderIDs:      []int64{1},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

	resp, body = suite.do(http.MethodGet, "/sources/pg/records?start=2024-01-01&end=2024-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records httpapi.RecordsResponse
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Empty(t, records.Records)

	resp, body = suite.do(http.MethodPost, "/sources/pg/records/lookup", httpapi.LookupRequest{OrderIDs: []int64{1}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records.Records, 1)
	assert.Equal(t, lo.ToPtr("77"), records.Records[0].SubmissionID)

	resp, body = suite.do(http.MethodDelete, "/sources/pg/submissions", httpapi.UnmarkRequest{OrderIDs: []int64{1}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

	resp, body = suite.do(http.MethodPost, "/sources/pg/records/lookup", httpapi.LookupRequest{OrderIDs: []int64{1}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records.Records, 1)
	assert.Nil(t, records.Records[0].SubmissionID)
}

func (suite *handlerSuite) TestPartialFailure() {
	t := suite.T()

	resp, body := suite.do(http.MethodPost, "/sources/pg/submissions", httpapi.MarkRequest{
		SubmissionID: "77",
		OrderIDs:     []int64{1, 404},
	})
	require.Equal(t, http.StatusMultiStatus, resp.StatusCode, string(body))

	var errResp httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, []int64{404}, errResp.FailedIDs)
	assert.Equal(t, []string{"order[404]: order not found"}, errResp.Messages)
}

func (suite *handlerSuite) TestLookupFailure() {
	t := suite.T()

	resp, body := suite.do(http.MethodPost, "/sources/pg/records/lookup", httpapi.LookupRequest{OrderIDs: []int64{1, 2}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))

	var errResp httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "error", errResp.Status)
	assert.Equal(t, []int64{2}, errResp.FailedIDs)

	resp, _ = suite.do(http.MethodPost, "/sources/pg/records/lookup", "not an object")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
