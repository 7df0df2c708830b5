package rbac

import "testing"

func TestAllowed_ExactAndWildcard(t *testing.T) {
	r := New()
	r.Add(RoleKasir, "GET", "/cashier")
	r.Add(RoleKasir, "POST", "/checkout")
	r.Add(RoleKasir, "GET", "/receipt/*")

	if !r.Allowed([]string{RoleKasir}, "/cashier", "GET") {
		t.Fatalf("expected kasir to access /cashier")
	}
	if !r.Allowed([]string{RoleKasir}, "/receipt/42", "GET") {
		t.Fatalf("expected wildcard match for /receipt/42")
	}
	if r.Allowed([]string{RoleKasir}, "/settings/clear_database", "POST") {
		t.Fatalf("kasir must not reach database management")
	}
}

func TestAllowed_AdminBypass(t *testing.T) {
	r := New()
	if !r.Allowed([]string{RoleAdmin}, "/settings/clear_database", "POST") {
		t.Fatalf("admin should pass every check")
	}
	if r.Allowed(nil, "/cashier", "GET") {
		t.Fatalf("no roles should never be allowed")
	}
}

func TestMatchPath_Segments(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/receipt/*", "/receipt/7", true},
		{"/receipt/*", "/receipt/7/pdf", true},
		{"/products/*/name", "/products/3/name", true},
		{"/products/*/name", "/products/3/price", false},
		{"/cashier", "/cashier/", true},
	}
	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.want {
			t.Fatalf("matchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}
