package version

import (
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commitID  string
		buildTime string
		want      string
	}{
		{name: "dev build", commitID: "abc123", want: "dev-abc123 "},
		{name: "release", version: "v0.1.0", commitID: "abc123", buildTime: "2021-06-01", want: "v0.1.0-abc123 2021-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, CommitID, BuildTime = tt.version, tt.commitID, tt.buildTime
			defer func() { Version, CommitID, BuildTime = "", "", "" }()
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
