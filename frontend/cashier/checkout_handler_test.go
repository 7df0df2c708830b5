package cashier

import (
	stdcontext "context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cashier-test.db")
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

func seedProduct(t *testing.T, db *sqlite.DB, code string, price, costPrice, stock int64) {
	t.Helper()
	err := db.WithWriteTx(stdcontext.Background(), func(ctx stdcontext.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (code, name, price, cost_price, stock) VALUES (?, ?, ?, ?, ?)`,
			code, "Produk "+code, price, costPrice, stock)
		return err
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func productStock(t *testing.T, db *sqlite.DB, code string) int64 {
	t.Helper()
	var stock int64
	err := db.WithReadTx(stdcontext.Background(), func(ctx stdcontext.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT stock FROM products WHERE code = ?`, code).Scan(ctx, &stock)
	})
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func newCheckoutRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	session := models.Session{
		UserID:    1,
		User:      models.User{ID: 1, Username: "kasir1", DisplayName: "Kasir Satu", Role: rbac.RoleKasir},
		UserRoles: []string{rbac.RoleKasir},
	}
	return req.WithContext(sessioncontext.NewContextWithSession(req.Context(), session))
}

func TestCheckoutCommandHandler_InvalidCartJSONRedirects(t *testing.T) {
	db := openTestDB(t)
	handler := CheckoutCommandHandler(db, cache.NewSettingsCache(), audit.NewService())

	req := newCheckoutRequest(url.Values{
		"cart_json": {"not-json"},
		"paid":      {"10000"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/cashier?err=invalid" {
		t.Fatalf("redirect = %q", got)
	}
}

func TestCheckoutCommandHandler_EmptyCartRedirects(t *testing.T) {
	db := openTestDB(t)
	handler := CheckoutCommandHandler(db, cache.NewSettingsCache(), audit.NewService())

	req := newCheckoutRequest(url.Values{
		"cart_json": {"[]"},
		"paid":      {"10000"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Location"); got != "/cashier?err=empty" {
		t.Fatalf("redirect = %q", got)
	}
}

func TestCheckoutCommandHandler_PaidLessRedirects(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "A001", 15000, 9000, 10)
	handler := CheckoutCommandHandler(db, cache.NewSettingsCache(), audit.NewService())

	req := newCheckoutRequest(url.Values{
		"cart_json": {`[{"code":"A001","name":"Produk A001","price":15000,"qty":2}]`},
		"paid":      {"20000"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Location"); got != "/cashier?err=paid-less" {
		t.Fatalf("redirect = %q", got)
	}
	if stock := productStock(t, db, "A001"); stock != 10 {
		t.Fatalf("stock changed on rejected checkout: %d", stock)
	}
}

func TestCheckoutCommandHandler_CreatesTransactionAndDecrementsStock(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "A001", 15000, 9000, 10)
	handler := CheckoutCommandHandler(db, cache.NewSettingsCache(), audit.NewService())

	req := newCheckoutRequest(url.Values{
		"cart_json":      {`[{"code":"A001","name":"Produk A001","price":15000,"qty":3}]`},
		"paid":           {"Rp 50.000"},
		"payment_method": {"cash"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); !strings.HasPrefix(got, "/receipt/") {
		t.Fatalf("redirect = %q", got)
	}
	if stock := productStock(t, db, "A001"); stock != 7 {
		t.Fatalf("stock = %d, want 7", stock)
	}

	var trx models.Transaction
	err := db.WithReadTx(stdcontext.Background(), func(ctx stdcontext.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&trx).Relation("Items").Limit(1).Scan(ctx)
	})
	if err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if trx.Total != 45000 || trx.Paid != 50000 || trx.Change != 5000 {
		t.Fatalf("totals = %d/%d/%d", trx.Total, trx.Paid, trx.Change)
	}
	if trx.Cashier != "Kasir Satu" {
		t.Fatalf("cashier = %q", trx.Cashier)
	}
	if !strings.HasPrefix(trx.TrxNo, "TRX-") || !strings.HasSuffix(trx.TrxNo, "-0001") {
		t.Fatalf("trx no = %q", trx.TrxNo)
	}
	if len(trx.Items) != 1 || trx.Items[0].CostPrice != 9000 || trx.Items[0].Subtotal != 45000 {
		t.Fatalf("items = %+v", trx.Items)
	}
}

func TestCheckoutCommandHandler_StockFloorsAtZero(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "A001", 15000, 9000, 2)
	handler := CheckoutCommandHandler(db, cache.NewSettingsCache(), audit.NewService())

	req := newCheckoutRequest(url.Values{
		"cart_json": {`[{"code":"A001","name":"Produk A001","price":15000,"qty":5}]`},
		"paid":      {"100000"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if stock := productStock(t, db, "A001"); stock != 0 {
		t.Fatalf("stock = %d, want 0", stock)
	}
}
