package urlkey

import "testing"

func TestNormalizeForDedup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trailing slash trimmed",
			in:   "https://Example.com/Path/",
			want: "https://example.com/Path",
		},
		{
			name: "fragment dropped",
			in:   "https://example.com/path#section",
			want: "https://example.com/path",
		},
		{
			name: "root path preserved",
			in:   "https://example.com/",
			want: "https://example.com/",
		},
		{
			name: "query preserved",
			in:   "https://example.com/search?q=go",
			want: "https://example.com/search?q=go",
		},
		{
			name: "port preserved",
			in:   "https://example.com:8443/path",
			want: "https://example.com:8443/path",
		},
		{
			name: "unparseable input returned trimmed",
			in:   "  not a url  ",
			want: "not a url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeForDedup(tt.in); got != tt.want {
				t.Errorf("NormalizeForDedup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeForDedupDeduplicates(t *testing.T) {
	a := NormalizeForDedup("HTTPS://Example.com/Path/")
	b := NormalizeForDedup("https://example.com/Path")
	if a != b {
		t.Errorf("expected equal keys, got %q and %q", a, b)
	}
}
