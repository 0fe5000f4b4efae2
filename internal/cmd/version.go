package cmd

import "strings"

// Version is set at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = ""

// GetVersion returns Version without its leading "v", or a dev marker.
func GetVersion() string {
	if Version == "" {
		return "0.0.1-dev"
	}
	return strings.TrimPrefix(Version, "v")
}
