package products

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

var validate = validator.New()

type productForm struct {
	Code      string `validate:"required"`
	Name      string `validate:"required"`
	CostPrice int64  `validate:"gte=0"`
	Price     int64  `validate:"gte=0"`
	Stock     int64  `validate:"gte=0"`
}

func bannerFor(code string) string {
	switch code {
	case "code-exists":
		return "Kode produk sudah ada!"
	case "invalid":
		return "Data produk tidak valid!"
	default:
		return ""
	}
}

// ProductsPageQueryHandler renders the product table, newest first.
func ProductsPageQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		rows, err := listProducts(r.Context(), db)
		if err != nil {
			slog.Error("list products failed", slog.Any("err", err))
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		setting, err := settings.LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}

		currentTheme := theme.FromRequest(r)
		data := ProductsPageData{
			Nav:          nav.BuildTopNavData(session, setting.StoreName, currentTheme),
			Theme:        currentTheme,
			Products:     rows,
			ErrorMessage: bannerFor(r.URL.Query().Get("err")),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductsPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render products page failed", slog.Any("err", err))
		}
	}
}

// AddProductCommandHandler creates a product; duplicate codes bounce
// back with the code-exists banner.
func AddProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}

		form := productForm{
			Code:      strings.TrimSpace(r.FormValue("code")),
			Name:      strings.TrimSpace(r.FormValue("name")),
			CostPrice: money.ParseUserInput(r.FormValue("cost_price")),
			Price:     money.ParseUserInput(r.FormValue("price")),
			Stock:     money.ParseUserInput(r.FormValue("stock")),
		}
		if err := validate.Struct(form); err != nil {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}

		err := addProduct(r.Context(), db, auditSvc, session.UserID, models.Product{
			Code:      form.Code,
			Name:      form.Name,
			CostPrice: form.CostPrice,
			Price:     form.Price,
			Stock:     form.Stock,
		})
		if err != nil {
			if errors.Is(err, ErrCodeExists) {
				http.Redirect(w, r, "/products?err=code-exists", http.StatusSeeOther)
				return
			}
			slog.Error("add product failed", slog.Any("err", err))
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	}
}

// UpdateProductCommandHandler updates prices and name. Stock can only
// be increased via stock_add; decreases happen through checkout alone.
func UpdateProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}

		pid, err := strconv.ParseInt(r.FormValue("pid"), 10, 64)
		if err != nil || pid <= 0 {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		costPrice := money.ParseUserInput(r.FormValue("cost_price"))
		price := money.ParseUserInput(r.FormValue("price"))
		stockAdd := money.ParseUserInput(r.FormValue("stock_add"))

		updatedBy := session.User.DisplayName
		if updatedBy == "" {
			updatedBy = session.User.Username
		}

		if err := updateProduct(r.Context(), db, auditSvc, session.UserID, updatedBy, pid, name, costPrice, price, stockAdd); err != nil {
			slog.Error("update product failed", slog.Int64("pid", pid), slog.Any("err", err))
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	}
}

// DeleteProductCommandHandler removes a product.
func DeleteProductCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		pid, err := strconv.ParseInt(r.FormValue("pid"), 10, 64)
		if err != nil || pid <= 0 {
			http.Redirect(w, r, "/products?err=invalid", http.StatusSeeOther)
			return
		}
		if err := deleteProduct(r.Context(), db, auditSvc, session.UserID, pid); err != nil {
			slog.Error("delete product failed", slog.Int64("pid", pid), slog.Any("err", err))
		}
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	}
}
