// Package config loads fdt configuration files and resolves the project files commands operate on.
package config

import (
	"path/filepath"

	"github.com/temirov/fdt/internal/utils"
)

const manifestDirectoryName = "manifest"

// ProjectPaths holds absolute locations of the files a command reads and writes.
type ProjectPaths struct {
	Output            string
	DestructiveOutput string
	ForceIgnore       string
	Components        string
	Project           string
}

// WithDefaults fills unset file locations with the fdt defaults.
func (config PackageCommandConfiguration) WithDefaults() PackageCommandConfiguration {
	result := config
	if result.Output == "" {
		result.Output = filepath.Join(manifestDirectoryName, utils.PackageXMLFileName)
	}
	if result.DestructiveOutput == "" {
		result.DestructiveOutput = filepath.Join(manifestDirectoryName, utils.DestructiveChangesFileName)
	}
	if result.ForceIgnore == "" {
		result.ForceIgnore = utils.ForceIgnoreFileName
	}
	if result.Project == "" {
		result.Project = utils.ProjectFileName
	}
	return result
}

// ResolvePaths anchors relative locations at workingDirectory. An unset components file stays empty.
func (config PackageCommandConfiguration) ResolvePaths(workingDirectory string) ProjectPaths {
	withDefaults := config.WithDefaults()
	return ProjectPaths{
		Output:            resolvePath(workingDirectory, withDefaults.Output),
		DestructiveOutput: resolvePath(workingDirectory, withDefaults.DestructiveOutput),
		ForceIgnore:       resolvePath(workingDirectory, withDefaults.ForceIgnore),
		Components:        resolvePath(workingDirectory, withDefaults.Components),
		Project:           resolvePath(workingDirectory, withDefaults.Project),
	}
}

func resolvePath(workingDirectory, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}
