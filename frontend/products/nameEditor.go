package products

import (
	"context"
	"strings"
	"time"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/modal"
)

// EditorState is the phase of one inline name field.
type EditorState int

const (
	EditorDisplay EditorState = iota
	EditorEditing
	EditorSaving
)

const savingPlaceholder = "Menyimpan..."

// NameSaveFunc persists the new name for a product. ok mirrors the
// server's success flag; message carries the server's error text.
type NameSaveFunc func(ctx context.Context, productID int64, name string) (ok bool, message string, err error)

// NameEditor drives one product-name field through
// Display -> Editing -> Saving -> Display. It keeps a shadow copy of
// the last confirmed name so failed or cancelled edits revert cleanly.
// Fields are independent; a page holds one editor per row.
type NameEditor struct {
	ProductID int64

	state      EditorState
	display    string
	input      string
	original   string
	pulseUntil time.Time

	modal *modal.Service
	save  NameSaveFunc
}

func NewNameEditor(productID int64, name string, m *modal.Service, save NameSaveFunc) *NameEditor {
	return &NameEditor{
		ProductID: productID,
		display:   name,
		original:  name,
		modal:     m,
		save:      save,
	}
}

func (e *NameEditor) State() EditorState { return e.state }
func (e *NameEditor) Display() string    { return e.display }
func (e *NameEditor) Input() string      { return e.input }
func (e *NameEditor) Original() string   { return e.original }

// SuccessPulse reports whether the post-save highlight is still
// showing at the given instant.
func (e *NameEditor) SuccessPulse(now time.Time) bool {
	return now.Before(e.pulseUntil)
}

// Begin activates editing: the input is prefilled with the current
// name. A no-op outside Display.
func (e *NameEditor) Begin() {
	if e.state != EditorDisplay {
		return
	}
	e.input = e.display
	e.state = EditorEditing
}

func (e *NameEditor) SetInput(value string) {
	if e.state == EditorEditing {
		e.input = value
	}
}

// Cancel discards the edit and reverts the input. A no-op outside
// Editing.
func (e *NameEditor) Cancel() {
	if e.state != EditorEditing {
		return
	}
	e.input = e.original
	e.state = EditorDisplay
}

// Commit persists the edited name. Unchanged or empty trimmed input
// reverts without a network call. On server failure or transport error
// both display and input revert and the error surfaces through the
// modal service.
func (e *NameEditor) Commit(ctx context.Context) error {
	if e.state != EditorEditing {
		return nil
	}

	newName := strings.TrimSpace(e.input)
	if newName == e.original || newName == "" {
		e.input = e.original
		e.state = EditorDisplay
		return nil
	}

	e.state = EditorSaving
	e.display = savingPlaceholder

	ok, message, err := e.save(ctx, e.ProductID, newName)
	if err != nil {
		e.revert()
		<-e.modal.Alert("Terjadi kesalahan saat mengupdate nama produk", "Error", modal.SeverityError)
		return err
	}
	if !ok {
		e.revert()
		if message == "" {
			message = "Gagal mengupdate nama produk"
		}
		<-e.modal.Alert(message, "Error", modal.SeverityError)
		return nil
	}

	e.display = newName
	e.original = newName
	e.input = newName
	e.state = EditorDisplay
	e.pulseUntil = time.Now().Add(time.Second)
	return nil
}

func (e *NameEditor) revert() {
	e.display = e.original
	e.input = e.original
	e.state = EditorDisplay
}
