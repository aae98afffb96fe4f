package assets

import "testing"

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"":                          false,
		"   ":                       false,
		"-":                         false,
		"ftp://host/file.pdf":       false,
		"www.example.com/file.pdf":  false,
		"http://host/file.pdf":      true,
		"https://host/file.pdf":     true,
		"https://host/no-extension": true,
	}
	for in, want := range cases {
		if got := IsValidURL(in); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExtensionFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://cdn.example.com/a/PHOTO.JPG?token=abc", ".jpg", true},
		{"https://cdn.example.com/a/doc.pdf", ".pdf", true},
		{"https://cdn.example.com/a/img.JpEg", ".jpeg", true},
		{"https://cdn.example.com/a/img.webp?x=1&y=2", ".webp", true},
		{"https://cdn.example.com/a/img.bmp", ".bmp", true},
		{"https://cdn.example.com/a/img.gif", ".gif", true},
		{"https://cdn.example.com/a/img.png", ".png", true},
		{"https://cdn.example.com/a/file.docx", "", false},
		{"https://cdn.example.com/view?file=doc.pdf", "", false},
		{"https://cdn.example.com/a/pdf", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtensionFromURL(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ExtensionFromURL(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("9876543210", "Rich Card Image (Pan)", ".png"); got != "9876543210_Rich Card Image (Pan).png" {
		t.Fatalf("FileName = %q", got)
	}
	if got := FileName("98/76", "PAN Image", ".jpg"); got != "98_76_PAN Image.jpg" {
		t.Fatalf("FileName with separator = %q", got)
	}
	if got := FileName("", "Cheque Image", ".png"); got != "_Cheque Image.png" {
		t.Fatalf("FileName with empty identifier = %q", got)
	}
}
