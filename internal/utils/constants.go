package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// Application file and directory names shared by configuration and commands.
const (
	// ApplicationName is the command name.
	ApplicationName = "fdt"
	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".fdt"
	// ForceIgnoreFileName is the default name of the force-ignore file.
	ForceIgnoreFileName = ".forceignore"
	// PackageXMLFileName is the default manifest file name.
	PackageXMLFileName = "package.xml"
	// DestructiveChangesFileName is the default destructive manifest file name.
	DestructiveChangesFileName = "destructiveChanges.xml"
	// ProjectFileName is the project descriptor consulted for the source API version.
	ProjectFileName = "sfdx-project.json"
	// DefaultAPIVersion is used when neither configuration nor project descriptor name one.
	DefaultAPIVersion = "59.0"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

// Messages used by the entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "fdt failed"
)
