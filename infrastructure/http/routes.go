package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jwfathoni/kasir-pos/frontend/cashier"
	"github.com/Jwfathoni/kasir-pos/frontend/login"
	"github.com/Jwfathoni/kasir-pos/frontend/products"
	"github.com/Jwfathoni/kasir-pos/frontend/receipt"
	"github.com/Jwfathoni/kasir-pos/frontend/reports"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterFrontendRoutes registers the authenticated store routes.
// Kasir and admin both reach these; Allowed lets admin through
// everywhere.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/theme/toggle")
	r.Post("/theme/toggle", theme.ToggleHandler())

	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/cashier")
	r.Get("/cashier", cashier.CashierPageQueryHandler(s.DB, s.SettingsCache))
	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/api/timezone-info")
	r.Get("/api/timezone-info", settings.TimezoneInfoQueryHandler(s.DB, s.SettingsCache))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/checkout")
	r.Post("/checkout", cashier.CheckoutCommandHandler(s.DB, s.SettingsCache, s.Audit))

	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/receipt/*")
	r.Get("/receipt/{trxID}", receipt.ReceiptPageQueryHandler(s.DB, s.SettingsCache))
	r.Get("/receipt/{trxID}/pdf", receipt.ReceiptPdfQueryHandler(s.DB, s.SettingsCache))

	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/products")
	r.Get("/products", products.ProductsPageQueryHandler(s.DB, s.SettingsCache))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/add")
	r.Post("/products/add", products.AddProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/update")
	r.Post("/products/update", products.UpdateProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/update_name")
	r.Post("/products/update_name", products.UpdateProductNameCommandHandler(s.DB))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/delete")
	r.Post("/products/delete", products.DeleteProductCommandHandler(s.DB, s.Audit))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/import_excel")
	r.Post("/products/import_excel", products.ImportProductsCommandHandler(s.DB))
	s.Rbac.Add(rbac.RoleKasir, http.MethodPost, "/products/import_stock_update")
	r.Post("/products/import_stock_update", products.ImportStockUpdatesCommandHandler(s.DB))
	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/products/export_stock_template")
	r.Get("/products/export_stock_template", products.ExportStockTemplateQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/reports")
	r.Get("/reports", reports.ReportsPageQueryHandler(s.DB, s.SettingsCache))
	s.Rbac.Add(rbac.RoleKasir, http.MethodGet, "/api/reports/*")
	r.Get("/api/reports/summary", reports.SummaryReportQueryHandler(s.DB, s.SettingsCache))
	r.Get("/api/reports/top_products", reports.TopProductsReportQueryHandler(s.DB))
	r.Get("/api/reports/problem_products", reports.ProblemProductsReportQueryHandler(s.DB))
	r.Get("/api/reports/stock", reports.StockReportQueryHandler(s.DB))
	r.Get("/api/reports/sales_trend", reports.SalesTrendReportQueryHandler(s.DB))
	r.Get("/api/reports/export_excel", reports.ExportReportsExcelQueryHandler(s.DB, s.SettingsCache))

	return r
}

// RegisterAdminRoutes registers admin-only routes: store settings and
// database management. No kasir grants here, so Allowed rejects them.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	r.Get("/settings", settings.SettingsPageQueryHandler(s.DB, s.SettingsCache))
	r.Post("/settings", settings.UpdateSettingsCommandHandler(s.DB, s.SettingsCache, s.Audit))
	r.Post("/settings/update_display_name", settings.UpdateDisplayNameCommandHandler(s.DB, s.SessionCache, s.UserCache))
	r.Get("/settings/export_db", settings.ExportDatabaseQueryHandler(s.DB))
	r.Post("/settings/import_db", settings.ImportDatabaseCommandHandler(s.DB, s.SettingsCache, s.SessionCache))
	r.Post("/settings/clear_database", settings.ClearDatabaseCommandHandler(s.DB, s.SettingsCache, s.Audit))
	return r
}
