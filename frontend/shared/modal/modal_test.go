package modal

import "testing"

func TestConfirmResolvesTrueOnlyOnYes(t *testing.T) {
	s := NewService()

	ch := s.Confirm("Hapus produk ini?", "")
	s.Resolve(true)
	if got := <-ch; !got {
		t.Fatalf("expected true on explicit yes")
	}

	ch = s.Confirm("Hapus produk ini?", "")
	s.Resolve(false)
	if got := <-ch; got {
		t.Fatalf("expected false on no")
	}
}

func TestConfirmBackdropResolvesFalse(t *testing.T) {
	s := NewService()
	ch := s.Confirm("Lanjutkan?", "")
	s.DismissBackdrop()
	if got := <-ch; got {
		t.Fatalf("backdrop dismissal must resolve false")
	}
}

func TestAlertBackdropResolvesFalse(t *testing.T) {
	s := NewService()
	ch := s.Alert("Keranjang kosong!", "Peringatan", SeverityWarning)
	s.DismissBackdrop()
	if got := <-ch; got {
		t.Fatalf("alert backdrop dismissal resolves false")
	}

	ch = s.Alert("Keranjang kosong!", "Peringatan", SeverityWarning)
	s.Resolve(true)
	if got := <-ch; !got {
		t.Fatalf("alert OK resolves true")
	}
}

func TestQueueIsFIFO(t *testing.T) {
	s := NewService()
	first := s.Confirm("pertama", "")
	second := s.Confirm("kedua", "")
	third := s.Alert("ketiga", "", SeverityInfo)

	if got := s.Active().Message; got != "pertama" {
		t.Fatalf("active = %q, want pertama", got)
	}
	s.Resolve(true)
	if got := <-first; !got {
		t.Fatalf("first should resolve true")
	}

	if got := s.Active().Message; got != "kedua" {
		t.Fatalf("active = %q, want kedua", got)
	}
	s.Resolve(false)
	if got := <-second; got {
		t.Fatalf("second should resolve false")
	}

	if got := s.Active().Message; got != "ketiga" {
		t.Fatalf("active = %q, want ketiga", got)
	}
	s.Resolve(true)
	<-third
	if s.Active() != nil {
		t.Fatalf("queue should be drained")
	}
}

func TestResolveWithoutActiveIsNoop(t *testing.T) {
	s := NewService()
	s.Resolve(true)
	s.DismissBackdrop()
	if s.Active() != nil {
		t.Fatalf("no dialog should be active")
	}
}

func TestSeverityIconFallback(t *testing.T) {
	cases := map[Severity]string{
		SeverityInfo:       "ℹ️",
		SeverityWarning:    "⚠️",
		SeverityError:      "❌",
		SeverityDanger:     "❌",
		SeveritySuccess:    "✅",
		Severity("bogus"):  "ℹ️",
		Severity(""):       "ℹ️",
	}
	for sev, want := range cases {
		if got := sev.Icon(); got != want {
			t.Fatalf("Icon(%q) = %q, want %q", sev, got, want)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	s := NewService()
	s.Alert("m", "Peringatan", SeverityWarning)
	if got := s.Active().DisplayTitle(); got != "⚠️ Peringatan" {
		t.Fatalf("alert title = %q", got)
	}
	s.Resolve(true)

	s.Confirm("m", "Konfirmasi Hapus")
	if got := s.Active().DisplayTitle(); got != "❓ Konfirmasi Hapus" {
		t.Fatalf("confirm title = %q", got)
	}
}
