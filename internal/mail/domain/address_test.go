package domain

import "testing"

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"a@mailinator.com\n", "mailinator.com", true},
		{"c@trashmail.com  \n", "trashmail.com", true},
		{"c@trashmail.com\r\n", "trashmail.com", true},
		{"  spaced@ example.org \t\n", "example.org", true},
		{"x@y@mailinator.com\n", "y@mailinator.com", true},
		{"@mailinator.com", "mailinator.com", true},
		{"trailing@\n", "", true},
		{"Upper@MailInator.COM", "MailInator.COM", true},
		{"noatsign\n", "", false},
		{"\n", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := SplitAddress(tt.line)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SplitAddress(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTrimLineBreak(t *testing.T) {
	tests := []struct{ in, want string }{
		{"example.com\n", "example.com"},
		{"example.com\r\n", "example.com"},
		{"example.com", "example.com"},
		{" example.com \n", " example.com "},
		{"\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TrimLineBreak(tt.in); got != tt.want {
			t.Errorf("TrimLineBreak(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
