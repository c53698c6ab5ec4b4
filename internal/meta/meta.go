package meta

// CLIName is the name of the binary and the prefix of its environment
// variables.
const CLIName = "tabulator"

// EnvPrefix is the prefix of environment variables read by the CLI.
const EnvPrefix = "TABULATOR"
