package config

const (
	defaultDataDir       = "~/.local/share/prematch"
	defaultLogDir        = "~/.local/share/prematch/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultMatchHours    = 24
	defaultProgressEvery = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			DefaultHours:  defaultMatchHours,
			ProgressEvery: defaultProgressEvery,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
