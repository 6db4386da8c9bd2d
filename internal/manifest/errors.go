package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrNilManifest indicates WritePackageXML received no renderer
	ErrNilManifest = errors.New("manifest renderer cannot be nil")

	// ErrEmptyPath indicates WritePackageXML received no destination path
	ErrEmptyPath = errors.New("manifest path cannot be empty")

	// ErrInvalidAPIVersion indicates an API version that is not major.minor
	ErrInvalidAPIVersion = errors.New("API version must look like 59.0")
)
