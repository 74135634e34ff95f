package login

import (
	"os"
)

// Env looks up an environment variable
type Env func(key string) (string, bool)

// OSEnv reads the process environment
func OSEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// EnvDebug forces the authorization url to be printed
const EnvDebug = "NEAR_DEBUG"

// variables set by common CI servers
var ciVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"BUILD_ID",
	"BUILD_NUMBER",
	"CI_APP_ID",
	"CI_BUILD_ID",
	"CI_BUILD_NUMBER",
	"CI_NAME",
	"RUN_ID",
}

func (e Env) set(key string) bool {
	v, ok := e(key)
	return ok && v != ""
}

// IsCI reports whether the process runs unattended on a CI server. CI=false
// switches detection off.
func (e Env) IsCI() bool {
	if v, ok := e("CI"); ok && v == "false" {
		return false
	}
	for _, key := range ciVars {
		if e.set(key) {
			return true
		}
	}
	return false
}

// IsDebug reports whether NEAR_DEBUG is set
func (e Env) IsDebug() bool {
	return e.set(EnvDebug)
}
