// Package fileio reads optional project files without ever failing the caller.
//
// Every read helper collapses a missing file and an unreadable or malformed file
// into the same empty default. Missing files are silent; every other failure is
// passed to the Reader's Reporter with the path relative to the working directory.
package fileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/fdt/internal/utils"
)

const (
	readFailureMessageFormat       = "Could not read file `%s`."
	parseFailureMessageFormat      = "Could not parse `%s`."
	invalidJSONMessageFormat       = "Found a .json file at `%s`, but it's invalid JSON."
	packageXMLFailureMessageFormat = "Found a package.xml file at `%s`, but could not read it."
	commentPrefix                  = "#"
)

// Reader performs best-effort reads of optional files.
type Reader struct {
	fileSystem       afero.Fs
	workingDirectory string
	reporter         Reporter
}

// NewReader constructs a Reader over fileSystem. Diagnostics name paths relative to workingDirectory.
// A nil fileSystem selects the operating system; a nil reporter discards diagnostics.
func NewReader(fileSystem afero.Fs, workingDirectory string, reporter Reporter) *Reader {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if reporter == nil {
		reporter = ReporterFunc(func(string) {})
	}
	return &Reader{fileSystem: fileSystem, workingDirectory: workingDirectory, reporter: reporter}
}

// ReadFileSafe returns the file's text, or "" when the file is missing or unreadable.
func (reader *Reader) ReadFileSafe(path string) string {
	content, found := reader.readText(path, readFailureMessageFormat)
	if !found {
		return utils.EmptyString
	}
	return content
}

// ReadFileJSONSafe returns the decoded JSON value of the file, or an empty array when
// the file is missing, unreadable or not valid JSON.
func (reader *Reader) ReadFileJSONSafe(path string) any {
	return reader.readJSON(path, parseFailureMessageFormat)
}

// ReadJSONFile behaves like ReadFileJSONSafe with a diagnostic worded for configuration files.
func (reader *Reader) ReadJSONFile(path string) any {
	return reader.readJSON(path, invalidJSONMessageFormat)
}

// ReadPackageXML returns the manifest text at path, or "" when it is missing or unreadable.
func (reader *Reader) ReadPackageXML(path string) string {
	content, found := reader.readText(path, packageXMLFailureMessageFormat)
	if !found {
		return utils.EmptyString
	}
	return content
}

// ReadForceIgnore returns the patterns listed in a force-ignore file in file order.
// Blank lines and lines starting with "#" are dropped; duplicates are kept and
// lines are not trimmed.
func (reader *Reader) ReadForceIgnore(path string) []string {
	patterns := []string{}
	content, found := reader.readText(path, readFailureMessageFormat)
	if !found {
		return patterns
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// readText reads path directly. found is false when the file is missing or the read failed;
// only the latter is reported.
func (reader *Reader) readText(path string, failureMessageFormat string) (content string, found bool) {
	data, readError := afero.ReadFile(reader.fileSystem, path)
	if readError != nil {
		if !errors.Is(readError, fs.ErrNotExist) {
			reader.report(failureMessageFormat, path)
		}
		return utils.EmptyString, false
	}
	return string(data), true
}

func (reader *Reader) readJSON(path string, failureMessageFormat string) any {
	data, readError := afero.ReadFile(reader.fileSystem, path)
	if readError != nil {
		if !errors.Is(readError, fs.ErrNotExist) {
			reader.report(failureMessageFormat, path)
		}
		return emptyJSONValue()
	}
	var decoded any
	if decodeError := json.Unmarshal(data, &decoded); decodeError != nil {
		reader.report(failureMessageFormat, path)
		return emptyJSONValue()
	}
	if decoded == nil {
		return emptyJSONValue()
	}
	return decoded
}

func (reader *Reader) report(messageFormat string, path string) {
	reader.reporter.Report(fmt.Sprintf(messageFormat, utils.RelativePathOrSelf(path, reader.workingDirectory)))
}

func emptyJSONValue() any {
	return []any{}
}
