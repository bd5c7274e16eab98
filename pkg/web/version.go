package web

import "sync"

var (
	verMu    sync.RWMutex
	ver      = "dev"
	verBuild = "unknown"
)

// SetVersionInfo sets the version information exposed by the web API
func SetVersionInfo(versionStr, buildTime string) {
	verMu.Lock()
	defer verMu.Unlock()
	ver = versionStr
	verBuild = buildTime
}

// GetVersionInfo returns the currently set version info
func GetVersionInfo() (string, string) {
	verMu.RLock()
	defer verMu.RUnlock()
	return ver, verBuild
}
