package http

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/frontend/login"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

type integrationEnv struct {
	server *httptest.Server
	db     *sqlite.DB
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "server-integration.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := login.UpsertUserPasswordHash(context.Background(), db, "admin", rbac.RoleAdmin, "Admin123kasir"); err != nil {
		t.Fatalf("seed admin user: %v", err)
	}
	if err := login.UpsertUserPasswordHash(context.Background(), db, "kasir1", rbac.RoleKasir, "Kasir123kasir"); err != nil {
		t.Fatalf("seed kasir user: %v", err)
	}
	if err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		p := models.Product{Code: "A001", Name: "Kopi Hitam", Price: 15000, CostPrice: 9000, Stock: 10, Status: "active"}
		_, err := tx.NewInsert().Model(&p).Exec(ctx)
		return err
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	settingsCache := cache.NewSettingsCache()
	rbacSvc := rbac.New()
	auditSvc := audit.NewService()

	s := NewServer("127.0.0.1:0", db, sessionCache, userCache, settingsCache, rbacSvc, auditSvc)
	ts := httptest.NewServer(s.router)
	env := &integrationEnv{server: ts, db: db}
	t.Cleanup(func() {
		env.server.Close()
		_ = env.db.Close()
	})

	return env, newHTTPClient(t)
}

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, baseURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func postForm(t *testing.T, client *http.Client, baseURL, path string, data url.Values) *http.Response {
	t.Helper()
	if data == nil {
		data = url.Values{}
	}
	if token := csrfToken(t, client, baseURL); token != "" {
		data.Set("_csrf", token)
	}
	resp, err := client.PostForm(baseURL+path, data)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "X-CSRF-Token" {
			return c.Value
		}
	}
	return ""
}

func loginAs(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()

	resp := get(t, client, baseURL, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login page 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = postForm(t, client, baseURL, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login 303, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/cashier" {
		t.Fatalf("unexpected login redirect: %s", location)
	}
	_ = resp.Body.Close()
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp := get(t, client, env.server.URL, "/login")
	_ = resp.Body.Close()

	resp = postForm(t, client, env.server.URL, "/login", url.Values{
		"username": {"admin"},
		"password": {"salah"},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); !strings.HasPrefix(location, "/login?error=") {
		t.Fatalf("redirect = %q", location)
	}
}

func TestUnauthenticatedRequestRedirectsToLogin(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp := get(t, client, env.server.URL, "/cashier")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/login" {
		t.Fatalf("redirect = %q", location)
	}
}

func TestPostWithoutCSRFTokenRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", "Admin123kasir")

	// Bypass postForm so no _csrf field is attached.
	resp, err := client.PostForm(env.server.URL+"/checkout", url.Values{"cart_json": {"[]"}})
	if err != nil {
		t.Fatalf("POST /checkout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestKasirCannotReachSettings(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "kasir1", "Kasir123kasir")

	resp := get(t, client, env.server.URL, "/settings")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/cashier" {
		t.Fatalf("redirect = %q", location)
	}
}

func TestAdminCanUpdateSettings(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", "Admin123kasir")

	resp := postForm(t, client, env.server.URL, "/settings", url.Values{
		"store_name":    {"Warung Integrasi"},
		"store_address": {"Jl. Uji 1"},
		"store_phone":   {"0800"},
		"timezone":      {"WITA"},
	})
	defer resp.Body.Close()
	if location := resp.Header.Get("Location"); location != "/settings?msg=updated" {
		t.Fatalf("redirect = %q", location)
	}

	var name, tz string
	err := env.db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT store_name, timezone FROM settings ORDER BY id ASC LIMIT 1`).Scan(ctx, &name, &tz)
	})
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if name != "Warung Integrasi" || tz != "WITA" {
		t.Fatalf("settings = %q %q", name, tz)
	}
}

func TestCheckoutFlowCreatesTransactionAndReceipt(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "kasir1", "Kasir123kasir")

	resp := postForm(t, client, env.server.URL, "/checkout", url.Values{
		"cart_json":      {`[{"code":"A001","name":"Kopi Hitam","price":15000,"qty":2}]`},
		"paid":           {"50000"},
		"payment_method": {"cash"},
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("checkout status = %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "/receipt/") {
		t.Fatalf("redirect = %q", location)
	}

	receiptResp := get(t, client, env.server.URL, location)
	defer receiptResp.Body.Close()
	if receiptResp.StatusCode != http.StatusOK {
		t.Fatalf("receipt status = %d", receiptResp.StatusCode)
	}

	var stock int64
	err := env.db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT stock FROM products WHERE code = 'A001'`).Scan(ctx, &stock)
	})
	if err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if stock != 8 {
		t.Fatalf("stock = %d, want 8", stock)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", "Admin123kasir")

	resp := postForm(t, client, env.server.URL, "/logout", nil)
	_ = resp.Body.Close()
	if location := resp.Header.Get("Location"); location != "/login" {
		t.Fatalf("redirect = %q", location)
	}

	after := get(t, client, env.server.URL, "/cashier")
	defer after.Body.Close()
	if location := after.Header.Get("Location"); location != "/login" {
		t.Fatalf("redirect after logout = %q", location)
	}
}

func TestReportsAPIServesJSON(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "kasir1", "Kasir123kasir")

	resp := get(t, client, env.server.URL, "/api/reports/summary")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}
