package whatsapp

import "testing"

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already international", "27721234567", "27721234567"},
		{"leading zero swapped", "0721234567", "27721234567"},
		{"bare nine digits prefixed", "721234567", "27721234567"},
		{"formatting stripped", "072 123-4567", "27721234567"},
		{"plus prefix stripped", "+27 72 123 4567", "27721234567"},
		{"empty", "", ""},
		{"no digits", "call me", ""},
		{"foreign number untouched", "447911123456", "447911123456"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeNumber(tc.in); got != tc.want {
				t.Fatalf("NormalizeNumber(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	got := Link("0721234567", "Hi! Order #42: 2x Kota")
	want := "https://wa.me/27721234567?text=Hi%21+Order+%2342%3A+2x+Kota"
	if got != want {
		t.Fatalf("Link = %q, want %q", got, want)
	}
}

func TestLinkWithoutText(t *testing.T) {
	if got := Link("0721234567", ""); got != "https://wa.me/27721234567" {
		t.Fatalf("Link = %q", got)
	}
}

func TestLinkUnparseableNumber(t *testing.T) {
	if got := Link("n/a", "hello"); got != "" {
		t.Fatalf("expected empty link, got %q", got)
	}
}
