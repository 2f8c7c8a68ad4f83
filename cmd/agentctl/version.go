package main

import (
	"runtime/debug"
	"strings"
)

// version is stamped by release builds:
//
//	go build -ldflags "-X main.version=v0.3.0" ./cmd/agentctl
var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

// currentVersion prefers the stamped version, then the module version that
// `go install github.com/mrbonezy/agentctl/cmd/agentctl@<tag>` records.
func currentVersion() string {
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	switch mv := strings.TrimSpace(info.Main.Version); mv {
	case "", "(devel)":
		return "dev"
	default:
		return mv
	}
}

// versionLine is printed by --version and doctor.
func versionLine() string {
	return "agentctl " + currentVersion()
}
