package receipt

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/models"
)

// renderReceiptPDF lays the receipt out on an 80mm thermal-style roll
// with a Code128 barcode of the transaction number at the bottom.
func renderReceiptPDF(trx models.Transaction, setting models.Setting, loc *time.Location) ([]byte, error) {
	// Height grows with the item count so the roll never clips.
	pageHeight := 120.0 + float64(len(trx.Items))*5.0
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 80, Ht: pageHeight},
	})
	pdf.SetTitle(trx.TrxNo, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(5, 6, 5)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, setting.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if setting.StoreAddress != "" {
		pdf.CellFormat(0, 4, setting.StoreAddress, "", 1, "C", false, 0, "")
	}
	if setting.StorePhone != "" {
		pdf.CellFormat(0, 4, setting.StorePhone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, "No: "+trx.TrxNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, "Tanggal: "+trx.CreatedAt.In(loc).Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, "Kasir: "+trx.Cashier, "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.CellFormat(0, 2, "", "T", 1, "L", false, 0, "")

	for _, item := range trx.Items {
		pdf.CellFormat(0, 4, item.ProductName, "", 1, "L", false, 0, "")
		qtyLine := fmt.Sprintf("%d x %s", item.Qty, money.Format(item.Price))
		pdf.CellFormat(40, 4, qtyLine, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 4, money.Format(item.Subtotal), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(0, 2, "", "T", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(40, 5, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, money.Format(trx.Total), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(40, 4, "Bayar ("+trx.PaymentMethod+")", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 4, money.Format(trx.Paid), "", 1, "R", false, 0, "")
	pdf.CellFormat(40, 4, "Kembali", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 4, money.Format(trx.Change), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	barcodePNG, err := renderCode128PNG(trx.TrxNo, 800, 160)
	if err != nil {
		return nil, err
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("trx-barcode-%d", trx.ID)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	imgW := 60.0
	imgH := 12.0
	pdf.ImageOptions(imageName, (80-imgW)/2, pdf.GetY(), imgW, imgH, false, opt, 0, "")
	pdf.SetY(pdf.GetY() + imgH + 1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 4, trx.TrxNo, "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 4, "Terima kasih atas kunjungan Anda!", "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
