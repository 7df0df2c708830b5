package receipt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
)

// ReceiptLine is one item row on the printed receipt.
type ReceiptLine struct {
	Name          string
	Qty           int64
	PriceLabel    string
	SubtotalLabel string
}

type ReceiptPageData struct {
	Nav          nav.TopNavData
	Theme        string
	StoreName    string
	StoreAddress string
	StorePhone   string
	TrxID        int64
	TrxNo        string
	CreatedAt    string
	Cashier      string
	Lines        []ReceiptLine
	TotalLabel   string
	PaidLabel    string
	ChangeLabel  string
	BackURL      string
}

// ReceiptPage renders the printable receipt with the store header,
// item lines and payment summary.
func ReceiptPage(data ReceiptPageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<section class="receipt"><div class="receipt-header">`)
		fmt.Fprintf(&b, `<h2>%s</h2>`, templ.EscapeString(data.StoreName))
		if data.StoreAddress != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(data.StoreAddress))
		}
		if data.StorePhone != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, templ.EscapeString(data.StorePhone))
		}
		b.WriteString(`</div>`)

		fmt.Fprintf(&b, `<div class="receipt-meta"><p>No: %s</p><p>Tanggal: %s</p><p>Kasir: %s</p></div>`,
			templ.EscapeString(data.TrxNo), templ.EscapeString(data.CreatedAt), templ.EscapeString(data.Cashier))

		b.WriteString(`<table class="receipt-lines"><tbody>`)
		for _, line := range data.Lines {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%d x %s</td><td>%s</td></tr>`,
				templ.EscapeString(line.Name), line.Qty,
				templ.EscapeString(line.PriceLabel), templ.EscapeString(line.SubtotalLabel))
		}
		b.WriteString(`</tbody></table>`)

		fmt.Fprintf(&b, `<div class="receipt-totals">`+
			`<p>Total: <strong>%s</strong></p>`+
			`<p>Bayar: %s</p>`+
			`<p>Kembali: %s</p></div>`,
			templ.EscapeString(data.TotalLabel), templ.EscapeString(data.PaidLabel), templ.EscapeString(data.ChangeLabel))

		fmt.Fprintf(&b, `<div class="receipt-actions">`+
			`<a href="%s">Kembali</a>`+
			`<a href="/receipt/%d/pdf">Unduh PDF</a>`+
			`<button type="button" onclick="window.print()">Cetak</button></div>`,
			templ.EscapeString(data.BackURL), data.TrxID)

		b.WriteString(`</section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return html.Layout("Struk", data.Theme, nav.TopNav(data.Nav), body)
}
