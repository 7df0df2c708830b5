package cashier

import (
	"fmt"
	"strconv"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/modal"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
)

// CheckoutSubmission is what actually leaves the page when the
// pre-submit checks pass: the digit-only paid value and the serialized
// cart field.
type CheckoutSubmission struct {
	PaidValue string
	CartJSON  string
}

// CheckoutGuard runs the pre-submit validation on the checkout form.
// It warns through the modal service and blocks the submission on an
// empty cart or insufficient payment. The checks are UX only; the
// checkout endpoint re-validates everything.
type CheckoutGuard struct {
	Modal *modal.Service
}

// Run returns the submission payload and true when the form may be
// submitted.
func (g *CheckoutGuard) Run(cart *Cart, paidRaw string) (CheckoutSubmission, bool) {
	if cart.Len() == 0 {
		<-g.Modal.Alert("Keranjang kosong!", "Peringatan", modal.SeverityWarning)
		return CheckoutSubmission{}, false
	}

	paid := money.ParseUserInput(paidRaw)
	total := cart.Total()
	if paid < total {
		msg := fmt.Sprintf("Jumlah bayar kurang!\nTotal: %s\nBayar: %s", money.Format(total), money.Format(paid))
		<-g.Modal.Alert(msg, "Peringatan", modal.SeverityWarning)
		return CheckoutSubmission{}, false
	}

	payload, err := cart.Payload()
	if err != nil {
		<-g.Modal.Alert("Data keranjang tidak valid!", "Peringatan", modal.SeverityWarning)
		return CheckoutSubmission{}, false
	}

	return CheckoutSubmission{
		PaidValue: strconv.FormatInt(paid, 10),
		CartJSON:  payload,
	}, true
}
