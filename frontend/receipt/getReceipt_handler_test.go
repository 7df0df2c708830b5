package receipt

import (
	"bytes"
	stdcontext "context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "receipt-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(stdcontext.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func seedTransaction(t *testing.T, db *sqlite.DB) models.Transaction {
	t.Helper()
	trx := models.Transaction{
		TrxNo:         "TRX-20260831-0001",
		Cashier:       "Kasir Satu",
		PaymentMethod: "cash",
		Total:         45000,
		Paid:          50000,
		Change:        5000,
		CreatedAt:     time.Date(2026, 8, 31, 7, 30, 0, 0, time.UTC),
	}
	err := db.WithWriteTx(stdcontext.Background(), func(ctx stdcontext.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&trx).Exec(ctx); err != nil {
			return err
		}
		item := models.TransactionItem{
			TransactionID: trx.ID,
			ProductCode:   "A001",
			ProductName:   "Kopi Hitam",
			Price:         15000,
			CostPrice:     9000,
			Qty:           3,
			Subtotal:      45000,
		}
		_, err := tx.NewInsert().Model(&item).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return trx
}

func newReceiptRequest(target, trxID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	session := models.Session{
		UserID:    1,
		User:      models.User{ID: 1, Username: "kasir1", DisplayName: "Kasir Satu", Role: rbac.RoleKasir},
		UserRoles: []string{rbac.RoleKasir},
	}
	ctx := sessioncontext.NewContextWithSession(req.Context(), session)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("trxID", trxID)
	ctx = stdcontext.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestReceiptPageRendersTransaction(t *testing.T) {
	db := openTestDB(t)
	trx := seedTransaction(t, db)
	handler := ReceiptPageQueryHandler(db, cache.NewSettingsCache())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newReceiptRequest("/receipt/"+strconv.FormatInt(trx.ID, 10), strconv.FormatInt(trx.ID, 10)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"TRX-20260831-0001", "Kopi Hitam", "Rp 45.000", "Rp 5.000", "Kasir Satu"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	// 07:30 UTC is 14:30 in the default WIB store timezone.
	if !strings.Contains(body, "31/08/2026 14:30") {
		t.Fatalf("body missing localized timestamp")
	}
	if !strings.Contains(body, `href="/cashier"`) {
		t.Fatalf("back link should default to /cashier")
	}
}

func TestReceiptPageBackLinkFromReports(t *testing.T) {
	db := openTestDB(t)
	trx := seedTransaction(t, db)
	handler := ReceiptPageQueryHandler(db, cache.NewSettingsCache())

	id := strconv.FormatInt(trx.ID, 10)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newReceiptRequest("/receipt/"+id+"?from=reports&mode=monthly", id))

	if !strings.Contains(rr.Body.String(), `href="/reports?mode=monthly"`) {
		t.Fatalf("back link should point at the monthly report")
	}
}

func TestReceiptPageUnknownTransactionRedirects(t *testing.T) {
	db := openTestDB(t)
	handler := ReceiptPageQueryHandler(db, cache.NewSettingsCache())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newReceiptRequest("/receipt/999", "999"))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/cashier" {
		t.Fatalf("redirect = %q", got)
	}
}

func TestReceiptPdfDownload(t *testing.T) {
	db := openTestDB(t)
	trx := seedTransaction(t, db)
	handler := ReceiptPdfQueryHandler(db, cache.NewSettingsCache())

	id := strconv.FormatInt(trx.ID, 10)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newReceiptRequest("/receipt/"+id+"/pdf", id))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "Struk_TRX-20260831-0001.pdf") {
		t.Fatalf("disposition = %q", got)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a pdf")
	}
}

func TestReceiptPdfUnknownTransaction(t *testing.T) {
	db := openTestDB(t)
	handler := ReceiptPdfQueryHandler(db, cache.NewSettingsCache())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newReceiptRequest("/receipt/999/pdf", "999"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
}
