package login

import "testing"

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"kasir123", false},
		{"Admin2024", false},
		{"short1", true},
		{"hanyahuruf", true},
		{"12345678", true},
		{"", true},
	}
	for _, tc := range cases {
		err := ValidatePasswordPolicy(tc.password)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ValidatePasswordPolicy(%q) err = %v, wantErr %v", tc.password, err, tc.wantErr)
		}
	}
}
