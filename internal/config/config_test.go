package config

import (
	"path/filepath"
	"testing"
)

// TestResolvePathsAppliesDefaults verifies default locations anchored at the working directory.
func TestResolvePathsAppliesDefaults(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	paths := PackageCommandConfiguration{}.ResolvePaths(workingDirectory)

	expected := ProjectPaths{
		Output:            filepath.Join(workingDirectory, "manifest", "package.xml"),
		DestructiveOutput: filepath.Join(workingDirectory, "manifest", "destructiveChanges.xml"),
		ForceIgnore:       filepath.Join(workingDirectory, ".forceignore"),
		Components:        "",
		Project:           filepath.Join(workingDirectory, "sfdx-project.json"),
	}
	if paths != expected {
		testingHandle.Fatalf("unexpected paths: got %+v want %+v", paths, expected)
	}
}

// TestResolvePathsKeepsAbsoluteLocations verifies that absolute settings are not re-anchored.
func TestResolvePathsKeepsAbsoluteLocations(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	absoluteOutput := filepath.Join(testingHandle.TempDir(), "out.xml")
	paths := PackageCommandConfiguration{Output: absoluteOutput, Components: "config/components.json"}.ResolvePaths(workingDirectory)

	if paths.Output != absoluteOutput {
		testingHandle.Fatalf("expected %s, got %s", absoluteOutput, paths.Output)
	}
	if paths.Components != filepath.Join(workingDirectory, "config", "components.json") {
		testingHandle.Fatalf("unexpected components path %s", paths.Components)
	}
}
