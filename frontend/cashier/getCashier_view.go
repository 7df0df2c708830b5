package cashier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/models"
)

type CashierPageData struct {
	Nav          nav.TopNavData
	Theme        string
	Products     []models.Product
	Cart         CartView
	ErrorMessage string
}

// CashierPage renders the cashier screen: searchable catalog, the cart
// region and the checkout form.
func CashierPage(data CashierPageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		if data.ErrorMessage != "" {
			fmt.Fprintf(&b, `<div class="banner error">%s</div>`, templ.EscapeString(data.ErrorMessage))
		}

		b.WriteString(`<section class="catalog"><input id="search" type="text" placeholder="Cari produk..." autocomplete="off"><div id="productList">`)
		for _, p := range data.Products {
			fmt.Fprintf(&b,
				`<button type="button" class="product" data-code="%s" data-name="%s" data-price="%d"><b>%s</b><br><small>%s &bull; %s &bull; stok %d</small></button>`,
				templ.EscapeString(p.Code), templ.EscapeString(p.Name), p.Price,
				templ.EscapeString(p.Name), templ.EscapeString(p.Code), money.Format(p.Price), p.Stock)
		}
		b.WriteString(`</div></section>`)

		b.WriteString(`<section class="cart-pane"><h2>Keranjang</h2><div id="cart">`)
		b.WriteString(CartFragmentHTML(data.Cart))
		fmt.Fprintf(&b, `</div><div class="total-row">Total: <span id="total">%s</span></div>`, templ.EscapeString(data.Cart.TotalLabel))

		b.WriteString(`<form id="checkout-form" method="POST" action="/checkout">` +
			`<input type="hidden" id="cart_json" name="cart_json" value="">` +
			`<label for="payment_method">Metode Bayar</label>` +
			`<select id="payment_method" name="payment_method"><option value="cash">Tunai</option><option value="qris">QRIS</option><option value="transfer">Transfer</option></select>` +
			`<label for="paid">Jumlah Bayar</label>` +
			`<input id="paid" name="paid" type="text" inputmode="numeric" data-currency-input autocomplete="off">` +
			`<button type="submit">Bayar</button>` +
			`<button type="button" id="clear-cart">Kosongkan</button>` +
			`</form></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return html.Layout("Kasir", data.Theme, nav.TopNav(data.Nav), body)
}

// CartFragmentHTML renders the cart region exactly as the in-page
// re-render does after every mutation.
func CartFragmentHTML(view CartView) string {
	if view.Empty {
		return fmt.Sprintf(`<div class="cart-empty">%s</div>`, templ.EscapeString(view.EmptyMessage))
	}
	var b strings.Builder
	for _, line := range view.Lines {
		fmt.Fprintf(&b, `<div class="row"><div><b>%s</b><br><small>%s &bull; %s</small></div><div class="qty">`+
			`<button type="button" data-qty-change="-1" data-code="%s">&minus;</button><span>%d</span><button type="button" data-qty-change="1" data-code="%s">+</button></div></div>`,
			templ.EscapeString(line.Name), templ.EscapeString(line.Code), templ.EscapeString(line.PriceLabel),
			templ.EscapeString(line.Code), line.Qty, templ.EscapeString(line.Code))
	}
	return b.String()
}
