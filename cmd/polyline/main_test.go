package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
		wantErr  bool
	}{
		{
			name:     "Encode sample",
			args:     []string{"encode", "38.5,-120.2", "40.7,-120.95", "43.252,-126.453"},
			expected: "_p~iF~ps|U_ulLnnqC_mqNvxq`@\n",
		},
		{
			name:     "Decode with prefix",
			args:     []string{"decode", "enc:_p~iF~ps|U"},
			expected: "Decoded Point 0: Latitude: 38.50000, Longitude: -120.20000\n",
		},
		{name: "Decode malformed", args: []string{"decode", "_p~iF"}, wantErr: true},
		{name: "Bad point", args: []string{"encode", "38.5"}, wantErr: true},
		{name: "Bad latitude", args: []string{"encode", "north,1"}, wantErr: true},
		{name: "Unknown command", args: []string{"reverse", "x"}, wantErr: true},
		{name: "Missing arguments", args: []string{"decode"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out.String() != tt.expected {
				t.Errorf("output = %q, want %q", out.String(), tt.expected)
			}
			if tt.wantErr && strings.TrimSpace(out.String()) != "" {
				t.Errorf("unexpected output on error: %q", out.String())
			}
		})
	}
}
