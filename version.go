package notepad

import (
	_ "embed"
)

// Version exposes the version of the library, read from the VERSION file.
//
//go:embed VERSION
var Version string
