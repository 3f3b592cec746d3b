package main

import (
	"bytes"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"testing"
)

func TestRun_ExitCodes(t *testing.T) {
	// Hold a port so the bind case fails deterministically.
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve a port: %v", err)
	}
	defer func() { _ = busy.Close() }()
	busyPort := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)

	root := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		want    int
		wantLog string
	}{
		{name: "help", args: []string{"-h"}, want: 0},
		{name: "invalid port", args: []string{"-port", "0"}, want: 2, wantLog: "Invalid arguments"},
		{name: "unknown flag", args: []string{"-compress"}, want: 2, wantLog: "Invalid arguments"},
		{name: "positional argument", args: []string{"public"}, want: 2, wantLog: "Invalid arguments"},
		{
			name:    "port in use",
			args:    []string{"-host", "127.0.0.1", "-port", busyPort, "-root", root},
			want:    1,
			wantLog: "cannot bind listener",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&out, nil))

			if got := run(tt.args, logger); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
			if tt.wantLog != "" && !strings.Contains(out.String(), tt.wantLog) {
				t.Errorf("run(%v) log = %q, want it to contain %q", tt.args, out.String(), tt.wantLog)
			}
		})
	}
}
