package versions

import "errors"

var (
	// ErrInvalidVersionFormat indicates an explicit identifier that does not
	// match the v<digits> pattern with a value of at least 1.
	ErrInvalidVersionFormat = errors.New("invalid version format")
	// ErrDuplicateVersion indicates an explicit identifier already in use on
	// the entity.
	ErrDuplicateVersion = errors.New("duplicate version")
	// ErrSourceFileMissing indicates the source path for a file-backed
	// version does not exist.
	ErrSourceFileMissing = errors.New("source file missing")
	// ErrCopyFailed indicates the filesystem copy into the canonical path
	// could not complete. The version record is rolled back.
	ErrCopyFailed = errors.New("copy failed")
)
