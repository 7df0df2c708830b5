package products

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/confirm"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/models"
)

type ProductsPageData struct {
	Nav          nav.TopNavData
	Theme        string
	Products     []models.Product
	ErrorMessage string
}

// ProductsPage renders the product table with the search box, inline
// name editing, per-row update/delete forms and the import panels.
func ProductsPage(data ProductsPageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		if data.ErrorMessage != "" {
			fmt.Fprintf(&b, `<div class="banner error">%s</div>`, templ.EscapeString(data.ErrorMessage))
		}

		b.WriteString(`<section class="add-product"><h2>Tambah Produk</h2>` +
			`<form method="POST" action="/products/add">` +
			`<input name="code" placeholder="Kode" required>` +
			`<input name="name" placeholder="Nama" required>` +
			`<input name="cost_price" placeholder="Harga Asli" inputmode="numeric" data-currency-input required>` +
			`<input name="price" placeholder="Harga Jual" inputmode="numeric" data-currency-input required>` +
			`<input name="stock" placeholder="Stok" inputmode="numeric" value="0">` +
			`<button type="submit">Tambah</button></form></section>`)

		b.WriteString(`<section class="imports">` +
			`<form id="import-excel-form" data-upload-url="/products/import_excel" enctype="multipart/form-data">` +
			`<label>Import Produk (Excel)</label><input type="file" name="file" accept=".xlsx,.xls">` +
			`<button type="submit" data-upload-label="Upload">Upload</button></form>` +
			`<form id="import-stock-form" data-upload-url="/products/import_stock_update" data-upload-kind="stock" enctype="multipart/form-data">` +
			`<label>Import Update Stok (Excel)</label><input type="file" name="file" accept=".xlsx,.xls">` +
			`<button type="submit" data-upload-label="Upload">Upload</button></form>` +
			`<a href="/products/export_stock_template">Download Template Update Stok</a></section>`)

		fmt.Fprintf(&b, `<section class="product-table"><input id="productSearch" type="text" placeholder="Cari produk..." autocomplete="off">`+
			`<p id="product-count">Menampilkan semua %d produk</p>`, len(data.Products))
		b.WriteString(`<table class="table"><thead><tr><th>Kode</th><th>Nama</th><th>Harga Asli</th><th>Harga Jual</th><th>Stok</th><th>Status</th><th></th></tr></thead><tbody>`)

		for _, p := range data.Products {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>`, templ.EscapeString(p.Code))
			fmt.Fprintf(&b,
				`<span class="product-name-display" data-product-id="%d" data-product-name="%s">%s</span>`+
					`<input class="product-name-edit" data-product-id="%d" type="text" style="display:none">`,
				p.ID, templ.EscapeString(p.Name), templ.EscapeString(p.Name), p.ID)
			b.WriteString(`</td>`)

			fmt.Fprintf(&b, `<td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>`,
				templ.EscapeString(money.Format(p.CostPrice)), templ.EscapeString(money.Format(p.Price)),
				p.Stock, templ.EscapeString(p.Status))

			fmt.Fprintf(&b,
				`<form method="POST" action="/products/update" data-confirm-action="`+confirm.ActionUpdateProduct+`">`+
					`<input type="hidden" name="pid" value="%d">`+
					`<input type="hidden" id="hidden-name-%d" name="name" value="%s">`+
					`<input type="hidden" name="stock" value="%d">`+
					`<input name="cost_price" value="%s" data-currency-input data-original-cost-price="%d">`+
					`<input name="price" value="%s" data-currency-input data-original-price="%d">`+
					`<input name="stock_add" value="0" inputmode="numeric">`+
					`<button type="submit">Update</button></form>`,
				p.ID, p.ID, templ.EscapeString(p.Name), p.Stock,
				templ.EscapeString(money.FormatInput(strconv.FormatInt(p.CostPrice, 10))), p.CostPrice,
				templ.EscapeString(money.FormatInput(strconv.FormatInt(p.Price, 10))), p.Price)

			fmt.Fprintf(&b,
				`<form id="delete-form-%d" method="POST" action="/products/delete" data-confirm-action="`+confirm.ActionDeleteProduct+`">`+
					`<input type="hidden" name="pid" value="%d"><button type="submit">Hapus</button></form>`,
				p.ID, p.ID)
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return html.Layout("Produk", data.Theme, nav.TopNav(data.Nav), body)
}
