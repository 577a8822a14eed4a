package config

// Config holds app configuration
type Config struct {
	InputFile  string `mapstructure:"input"`
	OutputFile string `mapstructure:"output"`

	// CodePage names the ANSI code page of non-unicode links (e.g. "windows-1252").
	// Empty means strings must already be valid UTF-8.
	CodePage string `mapstructure:"code_page"`

	// Strict fails the parse when extra data ends on a truncated or unknown block
	Strict bool `mapstructure:"strict"`
	Pretty bool `mapstructure:"pretty"`

	DryRun       bool   `mapstructure:"dry_run"`
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}
