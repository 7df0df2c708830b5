package reports

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/confirm"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
)

// TransactionRow is one line in the period transaction list.
type TransactionRow struct {
	ID            int64
	TrxNo         string
	CreatedAt     string
	Cashier       string
	PaymentMethod string
	TotalLabel    string
}

type ReportsPageData struct {
	Nav             nav.TopNavData
	Theme           string
	Title           string
	Mode            string
	Transactions    []TransactionRow
	Omzet           string
	PendapatanRiil  string
	PengeluaranStok string
	Jumlah          int64
}

func tabClass(active bool) string {
	if active {
		return "tab active"
	}
	return "tab"
}

// ReportsPage renders the report header, period totals, analysis
// panel placeholders and the transaction list. The panels carry the
// element ids the page script fills from /api/reports/*.
func ReportsPage(data ReportsPageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		fmt.Fprintf(&b, `<section id="reports-page" data-mode="%s"><h2>%s</h2>`,
			templ.EscapeString(data.Mode), templ.EscapeString(data.Title))

		b.WriteString(`<nav class="tabs">`)
		for _, tab := range []struct {
			mode  string
			label string
		}{
			{ModeDaily, "Harian"},
			{ModeMonthly, "Bulanan"},
			{ModeYearly, "Tahunan"},
		} {
			fmt.Fprintf(&b, `<a class="%s" data-mode="%s" href="/reports?mode=%s">%s</a>`,
				tabClass(tab.mode == data.Mode), tab.mode, tab.mode, tab.label)
		}
		b.WriteString(`</nav>`)

		fmt.Fprintf(&b, `<div class="totals">`+
			`<div class="stat"><span>Omzet</span><strong>%s</strong></div>`+
			`<div class="stat"><span>Pendapatan Riil</span><strong>%s</strong></div>`+
			`<div class="stat"><span>Pengeluaran Stok</span><strong>%s</strong></div>`+
			`<div class="stat"><span>Jumlah Transaksi</span><strong>%d</strong></div>`+
			`</div>`,
			templ.EscapeString(data.Omzet), templ.EscapeString(data.PendapatanRiil),
			templ.EscapeString(data.PengeluaranStok), data.Jumlah)

		fmt.Fprintf(&b, `<a id="export-excel-btn" class="button" href="/api/reports/export_excel?mode=%s" data-confirm-action="%s" data-export-mode="%s">Unduh Excel</a>`,
			data.Mode, confirm.ActionExportReport, data.Mode)

		b.WriteString(`<div class="panels">` +
			`<div class="panel"><h3>Ringkasan</h3>` +
			`<p>Total Produk: <span id="total-products">-</span></p>` +
			`<p>Produk Aktif: <span id="active-products">-</span></p>` +
			`<p>Terjual Bulan Ini: <span id="products-sold-this-month">-</span></p></div>` +
			`<div class="panel"><h3>Paling Laku</h3><ul id="top-selling-products"></ul>` +
			`<h3>Omzet Tertinggi</h3><ul id="highest-revenue-products"></ul></div>` +
			`<div class="panel"><h3>Jarang Laku</h3><ul id="rarely-sold-products"></ul>` +
			`<h3>Tidak Pernah Terjual</h3><ul id="never-sold-products"></ul></div>` +
			`<div class="panel"><h3>Stok Hampir Habis</h3><ul id="low-stock-products"></ul>` +
			`<h3>Overstock</h3><ul id="overstock-products"></ul></div>` +
			`<div class="panel"><h3>Tren Penjualan</h3><pre id="sales-trend-raw"></pre></div>` +
			`</div>`)

		b.WriteString(`<table class="table"><thead><tr><th>No Transaksi</th><th>Tanggal</th><th>Kasir</th><th>Metode</th><th>Total</th><th></th></tr></thead><tbody>`)
		if len(data.Transactions) == 0 {
			b.WriteString(`<tr><td colspan="6">Belum ada transaksi pada periode ini.</td></tr>`)
		}
		for _, row := range data.Transactions {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`+
				`<td><a href="/receipt/%d?from=reports&mode=%s">Struk</a></td></tr>`,
				templ.EscapeString(row.TrxNo), templ.EscapeString(row.CreatedAt),
				templ.EscapeString(row.Cashier), templ.EscapeString(row.PaymentMethod),
				templ.EscapeString(row.TotalLabel), row.ID, data.Mode)
		}
		b.WriteString(`</tbody></table></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return html.Layout("Laporan", data.Theme, nav.TopNav(data.Nav), body)
}
