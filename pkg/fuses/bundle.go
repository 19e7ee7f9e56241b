package fuses

import (
	"path/filepath"
	"strings"
)

// frameworkBinary is the image inside Contents/Frameworks that carries the wire.
var frameworkBinary = filepath.Join("Electron Framework.framework", "Electron Framework")

// ResolveBinaryPath maps an application path to the file holding the wire.
//
//   - "X.app" resolves to X.app/Contents/Frameworks/Electron Framework.framework/Electron Framework
//   - a path inside a bundle (X.app/Contents/MacOS/X) resolves two levels up
//     into Frameworks
//   - anything else is returned cleaned
func ResolveBinaryPath(path string) string {
	path = filepath.Clean(path)
	if strings.HasSuffix(path, ".app") {
		return filepath.Join(path, "Contents", "Frameworks", frameworkBinary)
	}
	if strings.Contains(path, ".app") {
		return filepath.Join(path, "..", "..", "Frameworks", frameworkBinary)
	}
	return path
}
