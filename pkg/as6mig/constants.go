package as6mig

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess            = 0  // Run completed successfully
	ExitGeneralError       = 1  // Unknown or unclassified error
	ExitUsageError         = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic              = 3  // Internal panic (unexpected crash)
	ExitConfigError        = 10 // Invalid configuration
	ExitProjectNotFound    = 11 // Project path does not exist
	ExitProjectFileMissing = 12 // No *.apj in the project path
	ExitPackageFileMissing = 13 // Logical/Libraries/Package.pkg not found
	ExitExtractionFailed   = 14 // An extraction function failed during a scan
	ExitApprovalDenied     = 15 // User declined the confirmation prompt
)

const (
	// HashChunkSize is the read size used when streaming a file into a digest.
	HashChunkSize = 4096

	// MaxConfigsShown is the number of configuration names listed per finding
	// before the remainder is summarized as "and N more".
	MaxConfigsShown = 3

	// ProjectFilePattern matches the Automation Studio project descriptor.
	ProjectFilePattern = "*.apj"

	// LogicalDir and PhysicalDir are the two top-level project folders.
	LogicalDir  = "Logical"
	PhysicalDir = "Physical"

	// LibrariesDir is skipped by source rewrites; library code is not migrated.
	LibrariesDir = "Libraries"

	// PackageFileName is the package descriptor listing the libraries in use.
	PackageFileName = "Package.pkg"
)
