package infoboard

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release version of infoboard.
var Version = strings.TrimSpace(rawVersion)
