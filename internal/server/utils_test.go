package server

import (
	"errors"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "root", input: "/", want: "/"},
		{name: "empty", input: "", want: "/"},
		{name: "file", input: "/css/layout.css", want: "/css/layout.css"},
		{name: "trailing slash", input: "/docs/", want: "/docs"},
		{name: "missing leading slash", input: "docs/index.html", want: "/docs/index.html"},
		{name: "dot segments", input: "/css/./layout.css", want: "/css/layout.css"},
		{name: "double slashes", input: "//css//layout.css", want: "/css/layout.css"},
		{name: "dots inside a name", input: "/notes/v1..2.txt", want: "/notes/v1..2.txt"},
		{name: "parent segment", input: "/../etc/passwd", wantErr: true},
		{name: "parent segment mid path", input: "/docs/../../etc/passwd", wantErr: true},
		{name: "parent segment at end", input: "/docs/..", wantErr: true},
		{name: "backslash separator", input: "/..\\..\\etc\\passwd", wantErr: true},
		{name: "null byte", input: "/index.html\x00.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validatePath(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errInvalidPath) {
					t.Errorf("validatePath(%q) error = %v, want errInvalidPath", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validatePath(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("validatePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
