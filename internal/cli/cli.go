// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fdt/internal/config"
	"github.com/temirov/fdt/internal/fileio"
	"github.com/temirov/fdt/internal/utils"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	versionTemplate      = "fdt version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "fdt command line interface"
	rootLongDescription  = `fdt builds Salesforce package.xml manifests from project paths.
Paths can be passed as arguments, piped on stdin (use -0 for NUL-delimited input such as find -print0),
or listed in a file. Paths matched by the .forceignore file are left out.`
	versionFlagDescription = "display application version"
	configFlagDescription  = "path to a configuration file replacing ./config.yaml"

	showUse              = "show [path]"
	showShortDescription = "print an existing package.xml"
	showLongDescription  = `Print the manifest at the given path, or at the configured output path.
A missing or unreadable manifest prints nothing.`

	ignoreUse              = "ignore [path]"
	ignoreShortDescription = "list force-ignore patterns"
	ignoreLongDescription  = `Print the patterns of a force-ignore file, one per line.
Comment lines starting with # and blank lines are skipped.`

	initUse                    = "init"
	initShortDescription       = "write the default configuration"
	globalFlagName             = "global"
	forceFlagName              = "force"
	globalFlagDescription      = "write ~/.fdt/config.yaml instead of ./config.yaml"
	forceFlagDescription       = "overwrite an existing configuration file"
	configurationWrittenFormat = "Wrote configuration to %s"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// commandEnvironment carries the collaborators shared by all commands.
type commandEnvironment struct {
	logger           *zap.Logger
	fileSystem       afero.Fs
	copier           clipboardCopier
	workingDirectory string
}

// Execute runs the fdt application.
func Execute(logger *zap.Logger) error {
	environment := commandEnvironment{
		logger:     logger,
		fileSystem: afero.NewOsFs(),
		copier:     systemClipboard{},
	}
	rootCommand := createRootCommand(environment)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(environment commandEnvironment) *cobra.Command {
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
	}
	registerBooleanFlag(rootCommand.Flags(), &showVersion, versionFlagName, "", false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createPackageCommand(environment, &configurationPath),
		createShowCommand(environment, &configurationPath),
		createIgnoreCommand(environment, &configurationPath),
		createInitCommand(environment),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createShowCommand returns the show subcommand.
func createShowCommand(environment commandEnvironment, configurationPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   showUse,
		Short: showShortDescription,
		Long:  showLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, projectPaths, err := environment.loadProject(*configurationPath)
			if err != nil {
				return err
			}
			manifestPath := projectPaths.Output
			if len(arguments) == 1 {
				manifestPath = resolveArgumentPath(workingDirectory, arguments[0])
			}
			content := environment.newReader(workingDirectory).ReadPackageXML(manifestPath)
			_, writeError := fmt.Fprint(command.OutOrStdout(), content)
			return writeError
		},
	}
}

// createIgnoreCommand returns the ignore subcommand.
func createIgnoreCommand(environment commandEnvironment, configurationPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   ignoreUse,
		Short: ignoreShortDescription,
		Long:  ignoreLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, projectPaths, err := environment.loadProject(*configurationPath)
			if err != nil {
				return err
			}
			ignorePath := projectPaths.ForceIgnore
			if len(arguments) == 1 {
				ignorePath = resolveArgumentPath(workingDirectory, arguments[0])
			}
			for _, pattern := range environment.newReader(workingDirectory).ReadForceIgnore(ignorePath) {
				if _, writeError := fmt.Fprintln(command.OutOrStdout(), pattern); writeError != nil {
					return writeError
				}
			}
			return nil
		},
	}
}

// createInitCommand returns the init subcommand.
func createInitCommand(environment commandEnvironment) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			workingDirectory, err := environment.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			writtenPath, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if err != nil {
				return err
			}
			environment.logger.Info(fmt.Sprintf(configurationWrittenFormat, writtenPath))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

func (environment commandEnvironment) resolveWorkingDirectory() (string, error) {
	if environment.workingDirectory != "" {
		return environment.workingDirectory, nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return workingDirectory, nil
}

// loadConfiguration merges the configuration files visible from the working directory.
func (environment commandEnvironment) loadConfiguration(configurationPath string) (string, config.PackageCommandConfiguration, error) {
	workingDirectory, err := environment.resolveWorkingDirectory()
	if err != nil {
		return "", config.PackageCommandConfiguration{}, err
	}
	applicationConfiguration, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
	})
	if err != nil {
		return "", config.PackageCommandConfiguration{}, err
	}
	return workingDirectory, applicationConfiguration.Package, nil
}

func (environment commandEnvironment) loadProject(configurationPath string) (string, config.ProjectPaths, error) {
	workingDirectory, packageConfiguration, err := environment.loadConfiguration(configurationPath)
	if err != nil {
		return "", config.ProjectPaths{}, err
	}
	return workingDirectory, packageConfiguration.ResolvePaths(workingDirectory), nil
}

func (environment commandEnvironment) newReader(workingDirectory string) *fileio.Reader {
	return fileio.NewReader(environment.fileSystem, workingDirectory, fileio.NewLoggerReporter(environment.logger))
}

func resolveArgumentPath(workingDirectory, argument string) string {
	if filepath.IsAbs(argument) {
		return argument
	}
	return filepath.Join(workingDirectory, argument)
}
