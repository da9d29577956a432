package cli

// Exit codes for the shiplog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitGenerationFailed indicates changelog generation failed
	ExitGenerationFailed = 1

	// ExitInvalidConfig indicates invalid configuration values
	ExitInvalidConfig = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingPrerequisite indicates a missing prerequisite,
	// such as running outside a git repository
	ExitMissingPrerequisite = 4
)
