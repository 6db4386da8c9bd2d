package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/fdt/internal/manifest"
)

// fakeClipboard records copied text.
type fakeClipboard struct {
	copied    []string
	copyError error
}

func (clipboard *fakeClipboard) Copy(text string) error {
	clipboard.copied = append(clipboard.copied, text)
	return clipboard.copyError
}

type commandRun struct {
	output string
	logs   *observer.ObservedLogs
	err    error
}

func (run commandRun) logMessages() []string {
	var messages []string
	for _, entry := range run.logs.All() {
		messages = append(messages, entry.Message)
	}
	return messages
}

func (run commandRun) logged(fragment string) bool {
	for _, message := range run.logMessages() {
		if strings.Contains(message, fragment) {
			return true
		}
	}
	return false
}

// executeCommand runs the root command inside workingDirectory with an isolated home directory.
func executeCommand(t *testing.T, workingDirectory string, copier clipboardCopier, standardInput string, arguments ...string) commandRun {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	core, observedLogs := observer.New(zapcore.DebugLevel)
	if copier == nil {
		copier = &fakeClipboard{}
	}
	environment := commandEnvironment{
		logger:           zap.New(core),
		fileSystem:       afero.NewOsFs(),
		copier:           copier,
		workingDirectory: workingDirectory,
	}
	rootCommand := createRootCommand(environment)
	var outputBuffer bytes.Buffer
	rootCommand.SetIn(strings.NewReader(standardInput))
	rootCommand.SetOut(&outputBuffer)
	rootCommand.SetErr(&outputBuffer)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	executionError := rootCommand.Execute()
	return commandRun{output: outputBuffer.String(), logs: observedLogs, err: executionError}
}

func writeProjectFile(t *testing.T, workingDirectory string, relativePath string, content string) {
	t.Helper()
	fullPath := filepath.Join(workingDirectory, relativePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", relativePath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", relativePath, err)
	}
}

func readProjectFile(t *testing.T, workingDirectory string, relativePath string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(workingDirectory, relativePath))
	if err != nil {
		t.Fatalf("read %s: %v", relativePath, err)
	}
	return string(content)
}

func TestPackageCommandWritesManifestForArguments(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, ".forceignore", "# generated files\n**/jsconfig.json\n\n")

	run := executeCommand(t, workingDirectory, nil, "",
		"package",
		"src/classes/Foo.cls",
		"src/classes/Foo.cls-meta.xml",
		"src/lwc/card/jsconfig.json",
		"src/lwc/card/card.js",
		"README.md",
	)
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}

	written := readProjectFile(t, workingDirectory, "manifest/package.xml")
	for _, expected := range []string{"<members>Foo</members>", "<name>ApexClass</name>", "<members>card</members>", "<version>59.0</version>"} {
		if !strings.Contains(written, expected) {
			t.Fatalf("expected %q in manifest:\n%s", expected, written)
		}
	}
	if strings.Count(written, "<members>Foo</members>") != 1 {
		t.Fatalf("expected Foo once:\n%s", written)
	}
	if !run.logged("Created manifest/package.xml") {
		t.Fatalf("expected success message, got %v", run.logMessages())
	}
	if !run.logged("Skipping README.md") {
		t.Fatalf("expected skip warning, got %v", run.logMessages())
	}
	if !run.logged("Ignoring src/lwc/card/jsconfig.json") {
		t.Fatalf("expected ignore debug message, got %v", run.logMessages())
	}
}

func TestPackageCommandReadsNullDelimitedStandardInput(t *testing.T) {
	workingDirectory := t.TempDir()
	run := executeCommand(t, workingDirectory, nil, "src/classes/A.cls\x00src/pages/Home.page\nsrc/classes/B.cls\x00",
		"package", "-0", "--output", "out/package.xml", "-e", "src/classes/B.cls",
	)
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	written := readProjectFile(t, workingDirectory, "out/package.xml")
	if !strings.Contains(written, "<members>A</members>") || !strings.Contains(written, "<members>Home</members>") {
		t.Fatalf("expected A and Home in manifest:\n%s", written)
	}
	if strings.Contains(written, "<members>B</members>") {
		t.Fatalf("expected excluded B to be absent:\n%s", written)
	}
}

func TestPackageCommandReadsPathsFromFile(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "changes.txt", "src/triggers/Account.trigger\r\n\r\nsrc/objects/Invoice__c.object\n")

	run := executeCommand(t, workingDirectory, nil, "", "package", "--from-file", "changes.txt")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	written := readProjectFile(t, workingDirectory, "manifest/package.xml")
	if !strings.Contains(written, "<members>Account</members>") || !strings.Contains(written, "<members>Invoice__c</members>") {
		t.Fatalf("unexpected manifest:\n%s", written)
	}
}

func TestPackageCommandDestructiveWritesBothManifests(t *testing.T) {
	workingDirectory := t.TempDir()
	run := executeCommand(t, workingDirectory, nil, "", "package", "--destructive", "src/classes/Legacy.cls")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}

	destructive := readProjectFile(t, workingDirectory, "manifest/destructiveChanges.xml")
	if !strings.Contains(destructive, "<members>Legacy</members>") || strings.Contains(destructive, "<version>") {
		t.Fatalf("unexpected destructive manifest:\n%s", destructive)
	}
	emptyPackage := readProjectFile(t, workingDirectory, "manifest/package.xml")
	if strings.Contains(emptyPackage, "<types>") || !strings.Contains(emptyPackage, "<version>59.0</version>") {
		t.Fatalf("unexpected empty package:\n%s", emptyPackage)
	}
	if !run.logged("Created manifest/destructiveChanges.xml") || !run.logged("Created manifest/package.xml") {
		t.Fatalf("expected both success messages, got %v", run.logMessages())
	}
}

func TestPackageCommandDestructiveRejectsSharedOutputPath(t *testing.T) {
	workingDirectory := t.TempDir()
	run := executeCommand(t, workingDirectory, nil, "",
		"package", "--destructive",
		"--output", "manifest/package.xml",
		"--destructive-output", "./manifest/../manifest/package.xml",
		"src/classes/Legacy.cls",
	)
	if !errors.Is(run.err, errManifestPathConflict) {
		t.Fatalf("expected path conflict error, got %v", run.err)
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, "manifest", "package.xml")); !errors.Is(statError, os.ErrNotExist) {
		t.Fatalf("expected no manifest to be written, got %v", statError)
	}
}

func TestPackageCommandForceIgnoreNegationKeepsPaths(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, ".forceignore", "src/classes/\n!src/classes/Keep.cls\n")

	run := executeCommand(t, workingDirectory, nil, "", "package", "src/classes/Keep.cls", "src/classes/Drop.cls")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	written := readProjectFile(t, workingDirectory, "manifest/package.xml")
	if !strings.Contains(written, "<members>Keep</members>") || strings.Contains(written, "Drop") {
		t.Fatalf("unexpected manifest:\n%s", written)
	}
	if !run.logged("Ignoring src/classes/Drop.cls") {
		t.Fatalf("expected ignore debug message, got %v", run.logMessages())
	}
}

func TestPackageCommandResolvesAPIVersion(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "sfdx-project.json", `{"sourceApiVersion": "57.0"}`)

	run := executeCommand(t, workingDirectory, nil, "", "package", "src/classes/Foo.cls")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	if written := readProjectFile(t, workingDirectory, "manifest/package.xml"); !strings.Contains(written, "<version>57.0</version>") {
		t.Fatalf("expected project API version:\n%s", written)
	}

	configured := executeCommand(t, workingDirectory, nil, "", "package", "--api-version", "60.0", "src/classes/Foo.cls")
	if configured.err != nil {
		t.Fatalf("package failed: %v", configured.err)
	}
	if written := readProjectFile(t, workingDirectory, "manifest/package.xml"); !strings.Contains(written, "<version>60.0</version>") {
		t.Fatalf("expected flag API version:\n%s", written)
	}

	invalid := executeCommand(t, workingDirectory, nil, "", "package", "--api-version", "latest", "src/classes/Foo.cls")
	if !errors.Is(invalid.err, manifest.ErrInvalidAPIVersion) {
		t.Fatalf("expected ErrInvalidAPIVersion, got %v", invalid.err)
	}
}

func TestPackageCommandAddsComponentsFromJSON(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "config/components.json", `["CustomLabels/CustomLabels", "broken", {"x": 1}]`)
	writeProjectFile(t, workingDirectory, "config/object.json", `{"Profile": ["Admin", 5]}`)
	writeProjectFile(t, workingDirectory, "config/invalid.json", `{invalid`)

	run := executeCommand(t, workingDirectory, nil, "", "package", "--components", "config/components.json")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	if written := readProjectFile(t, workingDirectory, "manifest/package.xml"); !strings.Contains(written, "<name>CustomLabels</name>") {
		t.Fatalf("expected CustomLabels component:\n%s", written)
	}
	if !run.logged(`Skipping component "broken"`) {
		t.Fatalf("expected rejected component warning, got %v", run.logMessages())
	}

	objectRun := executeCommand(t, workingDirectory, nil, "", "package", "--components", "config/object.json")
	if objectRun.err != nil {
		t.Fatalf("package failed: %v", objectRun.err)
	}
	if written := readProjectFile(t, workingDirectory, "manifest/package.xml"); !strings.Contains(written, "<members>Admin</members>") {
		t.Fatalf("expected Admin profile:\n%s", written)
	}

	invalidRun := executeCommand(t, workingDirectory, nil, "", "package", "--components", "config/invalid.json", "src/classes/Foo.cls")
	if invalidRun.err != nil {
		t.Fatalf("invalid components JSON must not fail the command: %v", invalidRun.err)
	}
	if !invalidRun.logged("Could not parse `config/invalid.json`.") {
		t.Fatalf("expected parse diagnostic, got %v", invalidRun.logMessages())
	}
}

func TestPackageCommandSurfacesWriteFailure(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "manifest", "not a directory")

	run := executeCommand(t, workingDirectory, nil, "", "package", "src/classes/Foo.cls")
	if run.err == nil {
		t.Fatalf("expected directory creation failure")
	}
}

func TestPackageCommandCopiesToClipboard(t *testing.T) {
	workingDirectory := t.TempDir()
	clipboard := &fakeClipboard{}

	run := executeCommand(t, workingDirectory, clipboard, "", "package", "--copy", "src/pages/Home.page")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	if len(clipboard.copied) != 1 || !strings.Contains(clipboard.copied[0], "<members>Home</members>") {
		t.Fatalf("unexpected clipboard content %v", clipboard.copied)
	}

	failing := &fakeClipboard{copyError: errors.New("no clipboard")}
	failedRun := executeCommand(t, workingDirectory, failing, "", "package", "--copy", "yes", "src/pages/Home.page")
	if failedRun.err == nil {
		t.Fatalf("expected clipboard failure to be returned")
	}
}

func TestShowCommandPrintsManifest(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "manifest/package.xml", "<Package/>\n")

	run := executeCommand(t, workingDirectory, nil, "", "show")
	if run.err != nil {
		t.Fatalf("show failed: %v", run.err)
	}
	if run.output != "<Package/>\n" {
		t.Fatalf("unexpected output %q", run.output)
	}

	missing := executeCommand(t, workingDirectory, nil, "", "show", "other/package.xml")
	if missing.err != nil || missing.output != "" {
		t.Fatalf("expected empty output for missing manifest, got %q, %v", missing.output, missing.err)
	}
}

func TestIgnoreCommandListsPatterns(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, ".forceignore", "# comment\nfoo\n\nbar\n")

	run := executeCommand(t, workingDirectory, nil, "", "ignore")
	if run.err != nil {
		t.Fatalf("ignore failed: %v", run.err)
	}
	if run.output != "foo\nbar\n" {
		t.Fatalf("unexpected output %q", run.output)
	}
}

func TestPackageCommandHonorsLocalConfiguration(t *testing.T) {
	workingDirectory := t.TempDir()
	writeProjectFile(t, workingDirectory, "config.yaml", "package:\n  output: deploy/package.xml\n  api_version: \"58.0\"\n  exclude: [\"src/classes/Skip*\"]\n")

	run := executeCommand(t, workingDirectory, nil, "", "package", "src/classes/Keep.cls", "src/classes/SkipMe.cls")
	if run.err != nil {
		t.Fatalf("package failed: %v", run.err)
	}
	written := readProjectFile(t, workingDirectory, "deploy/package.xml")
	if !strings.Contains(written, "<members>Keep</members>") || strings.Contains(written, "SkipMe") || !strings.Contains(written, "<version>58.0</version>") {
		t.Fatalf("unexpected manifest:\n%s", written)
	}
}

func TestInitCommandWritesConfiguration(t *testing.T) {
	workingDirectory := t.TempDir()
	run := executeCommand(t, workingDirectory, nil, "", "init")
	if run.err != nil {
		t.Fatalf("init failed: %v", run.err)
	}
	if content := readProjectFile(t, workingDirectory, "config.yaml"); !strings.Contains(content, "package:") {
		t.Fatalf("unexpected configuration:\n%s", content)
	}
	if second := executeCommand(t, workingDirectory, nil, "", "init"); second.err == nil {
		t.Fatalf("expected init to refuse overwriting without --force")
	}
	if forced := executeCommand(t, workingDirectory, nil, "", "init", "--force"); forced.err != nil {
		t.Fatalf("init --force failed: %v", forced.err)
	}
}

func TestRootCommandPrintsVersion(t *testing.T) {
	run := executeCommand(t, t.TempDir(), nil, "", "--version")
	if run.err != nil {
		t.Fatalf("version failed: %v", run.err)
	}
	if !strings.HasPrefix(run.output, "fdt version: ") {
		t.Fatalf("unexpected version output %q", run.output)
	}
}
