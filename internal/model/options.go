package model

// CLIOptions holds user-configurable runtime options after flag, env and
// config resolution.
type CLIOptions struct {
	Server  string // Backend origin, e.g. http://127.0.0.1:5000
	OutDir  string
	Verbose bool
	NoUI    bool
}
