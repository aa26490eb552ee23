package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixedDataset struct {
	ds  *domain.Dataset
	err error
}

func (f fixedDataset) Dataset(ctx context.Context) (*domain.Dataset, error) {
	return f.ds, f.err
}

func newTestRouter(provider service.DatasetProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(service.NewDashboardService(provider, nil))

	r := gin.New()
	r.GET("/views", h.ListViews)
	r.GET("/views/:view", h.GetView)
	r.GET("/views/:view/export", h.ExportView)
	r.GET("/dataset", h.GetDataset)
	return r
}

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		Purchases: []domain.PurchaseRecord{{EntryID: "A", Vendor: "V", Quantity: 3}},
		Sales:     []domain.SalesRecord{{Brand: "A", Quantity: 10}},
		Stock: []domain.JoinedStock{
			{StockRecord: domain.StockRecord{NameToDisplay: "A", Size: "M", Stock: 2}},
			{StockRecord: domain.StockRecord{NameToDisplay: "B", Size: "L", Stock: 8}},
		},
	}
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListViews(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Views []struct {
			View  string `json:"view"`
			Title string `json:"title"`
		} `json:"views"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Views, 7)
	assert.Equal(t, "overview", body.Views[0].View)
	assert.Equal(t, "Top 20% Products", body.Views[6].Title)
}

func TestGetView(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views/rejected-goods")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, domain.ViewRejectedGoods, report.View)
	assert.Equal(t, [][]string{{"V", "3"}}, report.Tables[0].Rows)
}

func TestGetViewNullMetric(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: &domain.Dataset{}}), "/views/overview")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	scalars := body["scalars"].([]any)
	sold := scalars[2].(map[string]any)
	assert.Nil(t, sold["value"])
	assert.Equal(t, "n/a", sold["display"])
}

func TestGetViewUnknown(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views/exchanges-and-returns")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetViewBadParam(t *testing.T) {
	r := newTestRouter(fixedDataset{ds: sampleDataset()})

	assert.Equal(t, http.StatusBadRequest, get(r, "/views/best-selling?period=daily").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/views/online-sales?quantile=x").Code)
}

func TestGetViewLoadFailure(t *testing.T) {
	w := get(newTestRouter(fixedDataset{err: domain.ErrMissingColumn}), "/views/overview")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportCSV(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views/unique-products/export?format=csv")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "unique-products.csv")
	assert.Contains(t, w.Body.String(), "Unique Products\n")
	assert.Contains(t, w.Body.String(), "B,L,8,,\n")
}

func TestExportXLSX(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views/top-products/export?format=xlsx&threshold=1")
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Top 100% Products")
}

func TestExportUnsupportedFormat(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/views/overview/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDataset(t *testing.T) {
	w := get(newTestRouter(fixedDataset{ds: sampleDataset()}), "/dataset")
	require.Equal(t, http.StatusOK, w.Code)

	var info domain.DatasetInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 2, info.JoinedStock)
	assert.Equal(t, 1, info.Purchases)
}
