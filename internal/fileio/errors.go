package fileio

import "errors"

// errNoPlatformSync makes Sync fall back to (*os.File).Sync.
var errNoPlatformSync = errors.New("fileio: no platform sync")
