package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/fdt/internal/utils"
)

const (
	directoryPermissions       = 0o755
	manifestFilePermissions    = 0o644
	createdMessageFormat       = "Created %s"
	createDirectoryErrorFormat = "create directory %s: %w"
	renderErrorFormat          = "render %s: %w"
	writeErrorFormat           = "write %s: %w"
)

// WriteResult carries the single outcome of an asynchronous write.
type WriteResult struct {
	Message string
	Err     error
}

// Writer persists rendered manifests. Concurrent writes to the same path are not coordinated; the last one wins.
type Writer struct {
	fileSystem       afero.Fs
	workingDirectory string
}

// NewWriter constructs a Writer. Success messages name paths relative to workingDirectory.
// A nil fileSystem selects the operating system.
func NewWriter(fileSystem afero.Fs, workingDirectory string) *Writer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Writer{fileSystem: fileSystem, workingDirectory: workingDirectory}
}

// WritePackageXML creates the parent directories of path, renders manifest and writes it to path,
// replacing any existing file. Directory failures stop the operation before rendering.
// On success it returns "Created <relative path>".
func (writer *Writer) WritePackageXML(ctx context.Context, manifest Renderer, path string, destructive bool) (string, error) {
	if manifest == nil {
		return "", ErrNilManifest
	}
	if path == "" {
		return "", ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	directoryPath := filepath.Dir(path)
	if err := writer.fileSystem.MkdirAll(directoryPath, directoryPermissions); err != nil {
		return "", fmt.Errorf(createDirectoryErrorFormat, directoryPath, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rendered, err := manifest.PackageXML(destructive)
	if err != nil {
		return "", fmt.Errorf(renderErrorFormat, path, err)
	}
	if err := afero.WriteFile(writer.fileSystem, path, []byte(rendered), os.FileMode(manifestFilePermissions)); err != nil {
		return "", fmt.Errorf(writeErrorFormat, path, err)
	}

	return fmt.Sprintf(createdMessageFormat, utils.RelativePathOrSelf(path, writer.workingDirectory)), nil
}

// WritePackageXMLAsync runs WritePackageXML in a goroutine. The returned channel receives exactly one result and is then closed.
func (writer *Writer) WritePackageXMLAsync(ctx context.Context, manifest Renderer, path string, destructive bool) <-chan WriteResult {
	results := make(chan WriteResult, 1)
	go func() {
		defer close(results)
		message, err := writer.WritePackageXML(ctx, manifest, path, destructive)
		results <- WriteResult{Message: message, Err: err}
	}()
	return results
}
