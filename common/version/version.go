package version

import "fmt"

// Build-time variables, set with -ldflags "-X github.com/xuperchain/near-shell/common/version.Version=..."
var (
	Version   = ""
	BuildTime = ""
	CommitID  = ""
)

// String returns the version line printed by --version
func String() string {
	if Version == "" {
		return fmt.Sprintf("dev-%s %s", CommitID, BuildTime)
	}
	return fmt.Sprintf("%s-%s %s", Version, CommitID, BuildTime)
}
