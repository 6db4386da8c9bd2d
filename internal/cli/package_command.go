package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/fdt/internal/config"
	"github.com/temirov/fdt/internal/fileio"
	"github.com/temirov/fdt/internal/ignore"
	"github.com/temirov/fdt/internal/input"
	"github.com/temirov/fdt/internal/manifest"
	"github.com/temirov/fdt/internal/utils"
)

const (
	packageUse              = "package [paths...]"
	packageAlias            = "p"
	packageShortDescription = "write package.xml for project paths (" + packageAlias + ")"
	packageLongDescription  = `Build a package.xml manifest from metadata source paths and write it to the configured output.
With --destructive the members are written to destructiveChanges.xml and an empty package.xml is written next to it.`
	packageUsageExample = `  # Manifest for the files changed since main
  git diff -z --name-only main | fdt package -0

  # Destructive manifest for removed classes
  fdt package --destructive src/classes/Legacy.cls`

	outputFlagName                   = "output"
	destructiveOutputFlagName        = "destructive-output"
	destructiveFlagName              = "destructive"
	apiVersionFlagName               = "api-version"
	forceIgnoreFlagName              = "force-ignore"
	componentsFlagName               = "components"
	fromFileFlagName                 = "from-file"
	stdinFlagName                    = "stdin"
	nullFlagName                     = "null"
	exclusionFlagName                = "e"
	copyFlagName                     = "copy"
	outputFlagDescription            = "manifest output path"
	destructiveOutputFlagDescription = "destructive manifest output path"
	destructiveFlagDescription       = "write a destructive manifest"
	apiVersionFlagDescription        = "manifest API version, for example 59.0"
	forceIgnoreFlagDescription       = "force-ignore file"
	componentsFlagDescription        = "JSON file listing extra components"
	fromFileFlagDescription          = "read paths from a file"
	stdinFlagDescription             = "read paths from standard input"
	nullFlagDescription              = "input paths are NUL-delimited (implies --stdin without --from-file)"
	exclusionFlagDescription         = "exclude path pattern"
	copyFlagDescription              = "copy the rendered manifest to the clipboard"

	sourceAPIVersionKey     = "sourceApiVersion"
	skipPathWarningFormat   = "Skipping %s: not a metadata source path"
	ignoredPathDebugFormat  = "Ignoring %s"
	invalidComponentFormat  = "Skipping component %q: expected Type/Member"
	readStandardInputFormat = "read paths from standard input: %w"
	copyToClipboardFormat   = "copy manifest to clipboard: %w"

	manifestPathConflictFormat = "%w: %s"
)

var errManifestPathConflict = errors.New("package.xml and destructiveChanges.xml resolve to the same path")

type packageOptions struct {
	output            string
	destructiveOutput string
	apiVersion        string
	forceIgnore       string
	components        string
	fromFile          string
	exclusionPatterns []string
	destructive       bool
	readStandardInput bool
	nullDelimited     bool
	copyToClipboard   bool
}

// createPackageCommand returns the package subcommand.
func createPackageCommand(environment commandEnvironment, configurationPath *string) *cobra.Command {
	var options packageOptions

	packageCommand := &cobra.Command{
		Use:     packageUse,
		Aliases: []string{packageAlias},
		Short:   packageShortDescription,
		Long:    packageLongDescription,
		Example: packageUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, packageConfiguration, err := environment.loadConfiguration(*configurationPath)
			if err != nil {
				return err
			}
			packageConfiguration = options.applyTo(command, packageConfiguration)
			return runPackage(command.Context(), command, environment, workingDirectory, packageConfiguration, options, arguments)
		},
	}

	flagSet := packageCommand.Flags()
	flagSet.StringVarP(&options.output, outputFlagName, "o", "", outputFlagDescription)
	flagSet.StringVar(&options.destructiveOutput, destructiveOutputFlagName, "", destructiveOutputFlagDescription)
	flagSet.StringVar(&options.apiVersion, apiVersionFlagName, "", apiVersionFlagDescription)
	flagSet.StringVar(&options.forceIgnore, forceIgnoreFlagName, "", forceIgnoreFlagDescription)
	flagSet.StringVar(&options.components, componentsFlagName, "", componentsFlagDescription)
	flagSet.StringVar(&options.fromFile, fromFileFlagName, "", fromFileFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(flagSet, &options.destructive, destructiveFlagName, "d", false, destructiveFlagDescription)
	registerBooleanFlag(flagSet, &options.readStandardInput, stdinFlagName, "", false, stdinFlagDescription)
	registerBooleanFlag(flagSet, &options.nullDelimited, nullFlagName, "0", false, nullFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	return packageCommand
}

// applyTo overlays explicitly set flags onto the loaded configuration.
func (options packageOptions) applyTo(command *cobra.Command, configuration config.PackageCommandConfiguration) config.PackageCommandConfiguration {
	flagSet := command.Flags()
	if flagSet.Changed(outputFlagName) {
		configuration.Output = options.output
	}
	if flagSet.Changed(destructiveOutputFlagName) {
		configuration.DestructiveOutput = options.destructiveOutput
	}
	if flagSet.Changed(apiVersionFlagName) {
		configuration.APIVersion = options.apiVersion
	}
	if flagSet.Changed(forceIgnoreFlagName) {
		configuration.ForceIgnore = options.forceIgnore
	}
	if flagSet.Changed(componentsFlagName) {
		configuration.Components = options.components
	}
	if flagSet.Changed(copyFlagName) {
		copyToClipboard := options.copyToClipboard
		configuration.Clipboard = &copyToClipboard
	}
	configuration.Exclude = utils.DeduplicatePatterns(append(append([]string{}, configuration.Exclude...), options.exclusionPatterns...))
	return configuration
}

func runPackage(
	ctx context.Context,
	command *cobra.Command,
	environment commandEnvironment,
	workingDirectory string,
	packageConfiguration config.PackageCommandConfiguration,
	options packageOptions,
	arguments []string,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	projectPaths := packageConfiguration.ResolvePaths(workingDirectory)
	reader := environment.newReader(workingDirectory)

	sourcePaths, err := options.collectSourcePaths(command.InOrStdin(), reader, workingDirectory, arguments)
	if err != nil {
		return err
	}

	apiVersion := resolveAPIVersion(packageConfiguration.APIVersion, reader, projectPaths.Project)
	pkg, err := manifest.NewPackage(apiVersion)
	if err != nil {
		return err
	}

	matcher := ignore.NewMatcher(reader.ReadForceIgnore(projectPaths.ForceIgnore)).Exclude(packageConfiguration.Exclude...)
	for _, sourcePath := range sourcePaths {
		relativePath := utils.RelativePathOrSelf(sourcePath, workingDirectory)
		if matcher.Matches(relativePath) {
			environment.logger.Debug(fmt.Sprintf(ignoredPathDebugFormat, relativePath))
			continue
		}
		component, mapped := manifest.ComponentFromPath(relativePath)
		if !mapped {
			environment.logger.Warn(fmt.Sprintf(skipPathWarningFormat, relativePath))
			continue
		}
		pkg.Add(component.Type, component.Member)
	}
	if projectPaths.Components != "" {
		for _, rejected := range addComponents(pkg, reader.ReadFileJSONSafe(projectPaths.Components)) {
			environment.logger.Warn(fmt.Sprintf(invalidComponentFormat, rejected))
		}
	}

	writer := manifest.NewWriter(environment.fileSystem, workingDirectory)
	messages, err := writeManifests(ctx, writer, pkg, projectPaths, options.destructive)
	if err != nil {
		return err
	}
	for _, message := range messages {
		environment.logger.Info(message)
	}

	if packageConfiguration.Clipboard != nil && *packageConfiguration.Clipboard {
		rendered, renderError := pkg.PackageXML(options.destructive)
		if renderError != nil {
			return renderError
		}
		if copyError := environment.copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(copyToClipboardFormat, copyError)
		}
	}
	return nil
}

// collectSourcePaths gathers paths from arguments, --from-file and standard input and normalizes them.
func (options packageOptions) collectSourcePaths(standardInput io.Reader, reader *fileio.Reader, workingDirectory string, arguments []string) ([]string, error) {
	items := append([]string{}, arguments...)

	if options.fromFile != "" {
		fileContent := reader.ReadFileSafe(resolveArgumentPath(workingDirectory, options.fromFile))
		if options.nullDelimited {
			items = append(items, input.SplitNullDelimited(fileContent)...)
		} else {
			items = append(items, fileContent)
		}
	}

	if options.readStandardInput || (options.nullDelimited && options.fromFile == "") {
		var standardInputItems []string
		var readError error
		if options.nullDelimited {
			standardInputItems, readError = input.ReadNullDelimited(standardInput)
		} else {
			standardInputItems, readError = input.ReadLines(standardInput)
		}
		if readError != nil {
			return nil, fmt.Errorf(readStandardInputFormat, readError)
		}
		items = append(items, standardInputItems...)
	}

	return input.HandleXargsNull(items), nil
}

// resolveAPIVersion prefers the configured version, then the project descriptor, then the default.
func resolveAPIVersion(configured string, reader *fileio.Reader, projectPath string) string {
	if configured != "" {
		return configured
	}
	if project, isObject := reader.ReadJSONFile(projectPath).(map[string]any); isObject {
		if version, isString := project[sourceAPIVersionKey].(string); isString && version != "" {
			return version
		}
	}
	return utils.DefaultAPIVersion
}

// addComponents adds components listed as ["Type/Member"] or {"Type": ["Member"]} and returns rejected entries.
func addComponents(pkg *manifest.Package, listing any) []string {
	var rejected []string
	switch typedListing := listing.(type) {
	case []any:
		for _, entry := range typedListing {
			value, isString := entry.(string)
			if !isString {
				rejected = append(rejected, fmt.Sprint(entry))
				continue
			}
			component, parsed := manifest.ParseComponent(value)
			if !parsed {
				rejected = append(rejected, value)
				continue
			}
			pkg.Add(component.Type, component.Member)
		}
	case map[string]any:
		for typeName, members := range typedListing {
			memberList, isList := members.([]any)
			if !isList {
				rejected = append(rejected, typeName)
				continue
			}
			for _, member := range memberList {
				memberName, isString := member.(string)
				if !isString || strings.TrimSpace(memberName) == "" {
					rejected = append(rejected, fmt.Sprintf("%s/%v", typeName, member))
					continue
				}
				pkg.Add(typeName, memberName)
			}
		}
	}
	return rejected
}

// writeManifests writes the manifest, or for destructive runs the destructive manifest plus an empty package.xml.
// The destructive pair is written concurrently, so both must target different files.
func writeManifests(ctx context.Context, writer *manifest.Writer, pkg *manifest.Package, projectPaths config.ProjectPaths, destructive bool) ([]string, error) {
	if !destructive {
		result := <-writer.WritePackageXMLAsync(ctx, pkg, projectPaths.Output, false)
		if result.Err != nil {
			return nil, result.Err
		}
		return []string{result.Message}, nil
	}

	if filepath.Clean(projectPaths.Output) == filepath.Clean(projectPaths.DestructiveOutput) {
		return nil, fmt.Errorf(manifestPathConflictFormat, errManifestPathConflict, projectPaths.Output)
	}
	emptyPackage, err := manifest.NewPackage(pkg.APIVersion())
	if err != nil {
		return nil, err
	}
	messages := make([]string, 2)
	group, groupContext := errgroup.WithContext(ctx)
	group.Go(func() error {
		message, writeError := writer.WritePackageXML(groupContext, pkg, projectPaths.DestructiveOutput, true)
		messages[0] = message
		return writeError
	})
	group.Go(func() error {
		message, writeError := writer.WritePackageXML(groupContext, emptyPackage, projectPaths.Output, false)
		messages[1] = message
		return writeError
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return messages, nil
}
