package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
)

func TestSummaryReportQueryHandlerShape(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "A001", "Kopi", 5, "active")
	seedTransaction(t, db, "TRX-1", time.Now(), []seedLine{{"A001", "Kopi", 10000, 7000, 4}})

	handler := SummaryReportQueryHandler(db, cache.NewSettingsCache())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/reports/summary", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"total_products", "active_products", "products_sold_this_month"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing key %q in %v", key, body)
		}
	}
	if body["products_sold_this_month"] != 4 {
		t.Fatalf("sold this month = %d", body["products_sold_this_month"])
	}
}

func TestTopProductsQueryHandlerEmptyListsNotNull(t *testing.T) {
	db := openTestDB(t)

	handler := TopProductsReportQueryHandler(db)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/reports/top_products", nil))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The page maps over these arrays, so they must never be null.
	for _, key := range []string{"top_selling_products", "highest_revenue_products"} {
		if string(body[key]) != "[]" {
			t.Fatalf("%s = %s, want []", key, body[key])
		}
	}
}
