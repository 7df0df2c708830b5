package confirm

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/modal"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
)

// Action kinds with a registered confirmation policy.
const (
	ActionDeleteProduct     = "product.delete"
	ActionUpdateProduct     = "product.update"
	ActionUpdateSettings    = "settings.update"
	ActionUpdateDisplayName = "settings.display_name"
	ActionImportDatabase    = "database.import"
	ActionClearDatabase     = "database.clear"
	ActionLogout            = "auth.logout"
	ActionExportReport      = "reports.export"
)

// StepKind is one phase of a confirmation sequence.
type StepKind int

const (
	StepAlert StepKind = iota
	StepPause
	StepConfirm
)

// Step is one entry in a policy's confirmation sequence.
type Step struct {
	Kind     StepKind
	Title    string
	Message  string
	Severity modal.Severity
	Pause    time.Duration
}

// Submission carries what the user is about to submit: the form values,
// whether a file is attached, and the server-rendered original values
// used for change detection.
type Submission struct {
	Values   url.Values
	HasFile  bool
	Original map[string]string
}

// Notice aborts a submission with an informational dialog instead of a
// confirmation sequence.
type Notice struct {
	Title    string
	Message  string
	Severity modal.Severity
}

// Policy describes how one action kind is confirmed before its form is
// submitted.
type Policy struct {
	Kind         string
	Irreversible bool

	// Precondition returns a Notice when the submission cannot proceed
	// at all (e.g. no file selected).
	Precondition func(Submission) *Notice

	// Skip returns a Notice when the submission is a no-op and needs
	// neither confirmation nor a network call.
	Skip func(Submission) *Notice

	// Steps builds the confirmation sequence for this submission.
	Steps func(Submission) []Step

	// CurrencyFields are digit-stripped right before submission on
	// every path.
	CurrencyFields []string
}

// Registry maps action kinds to their policies.
type Registry struct {
	policies map[string]Policy
}

// PolicyFor returns the policy for kind; ok is false when none exists.
func (r *Registry) PolicyFor(kind string) (Policy, bool) {
	p, ok := r.policies[kind]
	return p, ok
}

func staticSteps(steps ...Step) func(Submission) []Step {
	return func(Submission) []Step { return steps }
}

// DefaultRegistry wires the policies for every destructive or
// state-changing form in the app.
func DefaultRegistry() *Registry {
	r := &Registry{policies: make(map[string]Policy)}

	r.policies[ActionDeleteProduct] = Policy{
		Kind: ActionDeleteProduct,
		Steps: staticSteps(Step{
			Kind:    StepConfirm,
			Title:   "Konfirmasi Hapus",
			Message: "Apakah Anda yakin ingin menghapus produk ini?",
		}),
	}

	r.policies[ActionUpdateProduct] = Policy{
		Kind:           ActionUpdateProduct,
		Skip:           skipWhenProductUnchanged,
		Steps:          updateProductSteps,
		CurrencyFields: []string{"price", "cost_price"},
	}

	r.policies[ActionUpdateSettings] = Policy{
		Kind: ActionUpdateSettings,
		Steps: staticSteps(Step{
			Kind:    StepConfirm,
			Title:   "Konfirmasi Simpan Pengaturan",
			Message: "Apakah Anda yakin ingin menyimpan pengaturan toko?",
		}),
	}

	r.policies[ActionUpdateDisplayName] = Policy{
		Kind: ActionUpdateDisplayName,
		Steps: staticSteps(Step{
			Kind:    StepConfirm,
			Title:   "Konfirmasi Update Nama Kasir",
			Message: "Apakah Anda yakin ingin mengupdate nama kasir?",
		}),
	}

	r.policies[ActionImportDatabase] = Policy{
		Kind:         ActionImportDatabase,
		Irreversible: true,
		Precondition: func(s Submission) *Notice {
			if !s.HasFile {
				return &Notice{
					Title:    "Tidak ada file",
					Message:  "Pilih file database terlebih dahulu.",
					Severity: modal.SeverityWarning,
				}
			}
			return nil
		},
		Steps: staticSteps(Step{
			Kind:  StepConfirm,
			Title: "Konfirmasi Import Database",
			Message: "Import database akan MENGGANTI seluruh data saat ini dengan isi file yang diupload.\n\n" +
				"Pastikan Anda menggunakan file backup yang benar.\n\nLanjutkan?",
		}),
	}

	r.policies[ActionClearDatabase] = Policy{
		Kind:         ActionClearDatabase,
		Irreversible: true,
		Steps: staticSteps(
			Step{
				Kind:  StepAlert,
				Title: "PERINGATAN: Hapus Semua Data",
				Message: "⚠️ PERINGATAN! ⚠️\n\n" +
					"Tindakan ini akan menghapus SEMUA data dari database:\n" +
					"• Semua produk\n• Semua transaksi\n• Semua update stok\n• Semua item transaksi\n\n" +
					"Data yang dihapus TIDAK DAPAT dikembalikan!",
				Severity: modal.SeverityWarning,
			},
			Step{Kind: StepPause, Pause: 500 * time.Millisecond},
			Step{
				Kind:    StepConfirm,
				Title:   "Konfirmasi Hapus Database",
				Message: "Apakah Anda benar-benar yakin ingin menghapus SEMUA data dari database?",
			},
			Step{
				Kind:  StepConfirm,
				Title: "Konfirmasi Akhir - Hapus Database",
				Message: "Konfirmasi akhir:\n\n" +
					"Anda akan menghapus SEMUA data dari database.\n" +
					"Tindakan ini TIDAK DAPAT DIBATALKAN!\n\nApakah Anda yakin?",
			},
		),
	}

	r.policies[ActionExportReport] = Policy{
		Kind:  ActionExportReport,
		Steps: exportReportSteps,
	}

	r.policies[ActionLogout] = Policy{
		Kind: ActionLogout,
		Steps: staticSteps(Step{
			Kind:    StepConfirm,
			Title:   "Konfirmasi Logout",
			Message: "Apakah Anda yakin ingin keluar?",
		}),
	}

	return r
}

// skipWhenProductUnchanged aborts with an info notice when no stock is
// added and submitted prices equal the server-rendered originals after
// digit-stripping.
func skipWhenProductUnchanged(s Submission) *Notice {
	if money.ParseUserInput(s.Values.Get("stock_add")) != 0 {
		return nil
	}
	origCost, okCost := s.Original["cost_price"]
	origPrice, okPrice := s.Original["price"]
	if !okCost || !okPrice {
		return nil
	}
	newCost := money.ParseUserInput(s.Values.Get("cost_price"))
	newPrice := money.ParseUserInput(s.Values.Get("price"))
	if money.ParseUserInput(origCost) == newCost && money.ParseUserInput(origPrice) == newPrice {
		return &Notice{
			Title:    "Informasi",
			Message:  "Tidak ada perubahan yang perlu disimpan.",
			Severity: modal.SeverityInfo,
		}
	}
	return nil
}

// exportReportSteps names the report type in the confirmation so the
// user sees which period they are about to download.
func exportReportSteps(s Submission) []Step {
	var name string
	switch s.Values.Get("mode") {
	case "monthly":
		name = "Bulanan"
	case "yearly":
		name = "Tahunan"
	default:
		name = "Harian"
	}
	return []Step{{
		Kind:    StepConfirm,
		Title:   fmt.Sprintf("Konfirmasi Unduh Laporan %s", name),
		Message: fmt.Sprintf("Apakah Anda yakin ingin mengunduh Laporan %s?", name),
	}}
}

func updateProductSteps(s Submission) []Step {
	stockAdd := money.ParseUserInput(s.Values.Get("stock_add"))
	message := "Apakah Anda yakin ingin mengupdate harga produk ini?"
	if stockAdd > 0 {
		message = fmt.Sprintf("Apakah Anda yakin ingin mengupdate produk ini?\n\n- Update harga\n- Tambah stok: +%d", stockAdd)
	}
	return []Step{{
		Kind:    StepConfirm,
		Title:   "Konfirmasi Update Produk",
		Message: message,
	}}
}
