package ports

import "testing"

func TestNormalizeAddress(t *testing.T) {
	cases := map[string]string{
		"":                                  "",
		"   ":                               "",
		"1 Main St, Phoenix":                "1 Main St, Phoenix",
		"  1  Main\tSt,\n Phoenix ":         "1 Main St, Phoenix",
		"120 E Washington St,  Phoenix, AZ": "120 E Washington St, Phoenix, AZ",
	}
	for in, want := range cases {
		if got := NormalizeAddress(in); got != want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", in, got, want)
		}
	}
}
