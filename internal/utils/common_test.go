package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"/0", "[0]"},
		{"/0/status", "[0].status"},
		{"#/12/createdAt", "[12].createdAt"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
