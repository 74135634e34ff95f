package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestOpenLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantErr   bool
	}{
		{
			name:  "warn drops debug",
			level: "warn",
		},
		{
			name:      "debug keeps debug",
			level:     "debug",
			wantDebug: true,
		},
		{
			name:    "bad level falls back to warn",
			level:   "loud",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			l, err := openLog(&LogConfig{Module: "test", Level: tt.level}, buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openLog() error = %v, wantErr %v", err, tt.wantErr)
			}
			l.Debug("debug record")
			l.Warn("warn record", "account", "alice.near")

			out := buf.String()
			if !strings.Contains(out, "warn record") || !strings.Contains(out, "account=alice.near") {
				t.Errorf("warn record missing: %q", out)
			}
			if got := strings.Contains(out, "debug record"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestOpenLogJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := openLog(&LogConfig{Module: "test", Level: "info", Fmt: "json"}, buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expect json record, got %q", buf.String())
	}
}
