// Package config resolves run settings from defaults, the project's
// as6mig.yaml, AS6MIG_* environment variables and command-line flags.
package config
