package confirm

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/modal"
)

// answer drives the modal presenter from a script of responses, one per
// opened dialog.
func answer(t *testing.T, m *modal.Service, responses ...bool) {
	t.Helper()
	go func() {
		for _, resp := range responses {
			for m.Active() == nil {
				time.Sleep(time.Millisecond)
			}
			m.Resolve(resp)
		}
	}()
}

func testRegistry(t *testing.T) (*Interceptor, *Registry, *modal.Service) {
	t.Helper()
	m := modal.NewService()
	return NewInterceptor(m), DefaultRegistry(), m
}

func TestDeleteProductNeedsOneConfirm(t *testing.T) {
	i, reg, m := testRegistry(t)
	p, ok := reg.PolicyFor(ActionDeleteProduct)
	if !ok {
		t.Fatalf("missing delete policy")
	}

	answer(t, m, true)
	proceed, err := i.Run(context.Background(), p, Submission{Values: url.Values{}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !proceed {
		t.Fatalf("expected proceed after yes")
	}

	answer(t, m, false)
	proceed, err = i.Run(context.Background(), p, Submission{Values: url.Values{}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if proceed {
		t.Fatalf("expected abort after no")
	}
}

func TestUpdateProductSkipsWhenUnchanged(t *testing.T) {
	i, reg, m := testRegistry(t)
	p, _ := reg.PolicyFor(ActionUpdateProduct)

	sub := Submission{
		Values: url.Values{
			"stock_add":  {"0"},
			"price":      {"12.500"},
			"cost_price": {"10.000"},
		},
		Original: map[string]string{"price": "12500", "cost_price": "10000"},
	}

	// Only the info alert opens; no confirm dialog.
	answer(t, m, true)
	proceed, err := i.Run(context.Background(), p, sub)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if proceed {
		t.Fatalf("unchanged update must not proceed")
	}
}

func TestUpdateProductConfirmsWhenPriceChanged(t *testing.T) {
	i, reg, m := testRegistry(t)
	p, _ := reg.PolicyFor(ActionUpdateProduct)

	sub := Submission{
		Values: url.Values{
			"stock_add":  {"0"},
			"price":      {"15.000"},
			"cost_price": {"10.000"},
		},
		Original: map[string]string{"price": "12500", "cost_price": "10000"},
	}

	answer(t, m, true)
	proceed, err := i.Run(context.Background(), p, sub)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !proceed {
		t.Fatalf("changed price should proceed after confirm")
	}
	if got := sub.Values.Get("price"); got != "15000" {
		t.Fatalf("price not stripped before submit: %q", got)
	}
	if got := sub.Values.Get("cost_price"); got != "10000" {
		t.Fatalf("cost_price not stripped before submit: %q", got)
	}
}

func TestUpdateProductStockAddMessage(t *testing.T) {
	steps := updateProductSteps(Submission{Values: url.Values{"stock_add": {"7"}}})
	if len(steps) != 1 {
		t.Fatalf("expected one confirm step, got %d", len(steps))
	}
	want := "Apakah Anda yakin ingin mengupdate produk ini?\n\n- Update harga\n- Tambah stok: +7"
	if steps[0].Message != want {
		t.Fatalf("message = %q", steps[0].Message)
	}
}

func TestImportDatabaseRequiresFile(t *testing.T) {
	i, reg, m := testRegistry(t)
	p, _ := reg.PolicyFor(ActionImportDatabase)

	answer(t, m, true)
	proceed, err := i.Run(context.Background(), p, Submission{Values: url.Values{}, HasFile: false})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if proceed {
		t.Fatalf("import without file must abort")
	}

	answer(t, m, true)
	proceed, err = i.Run(context.Background(), p, Submission{Values: url.Values{}, HasFile: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !proceed {
		t.Fatalf("import with file and confirm should proceed")
	}
}

func TestClearDatabaseNeedsWarningAndTwoConfirms(t *testing.T) {
	i, reg, m := testRegistry(t)
	p, _ := reg.PolicyFor(ActionClearDatabase)
	if !p.Irreversible {
		t.Fatalf("clear database must be flagged irreversible")
	}

	// Warning acknowledged, both confirms accepted.
	answer(t, m, true, true, true)
	start := time.Now()
	proceed, err := i.Run(context.Background(), p, Submission{Values: url.Values{}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !proceed {
		t.Fatalf("expected proceed after warning + two confirms")
	}
	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Fatalf("pause after warning skipped, elapsed %v", elapsed)
	}

	// Second confirm declined.
	answer(t, m, true, true, false)
	proceed, err = i.Run(context.Background(), p, Submission{Values: url.Values{}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if proceed {
		t.Fatalf("declined final confirm must abort")
	}
}

func TestRunHonorsContextCancel(t *testing.T) {
	i, reg, _ := testRegistry(t)
	p, _ := reg.PolicyFor(ActionDeleteProduct)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := i.Run(ctx, p, Submission{Values: url.Values{}})
	if err == nil {
		t.Fatalf("expected context error")
	}
}
