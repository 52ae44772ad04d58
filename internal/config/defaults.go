package config

const (
	defaultConfigPath       = "~/.config/discauthor/config.toml"
	defaultOutputDir        = "~/dvd"
	defaultStateDir         = "~/.local/share/discauthor"
	defaultLogDir           = "~/.local/share/discauthor/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultDVDAuthorBinary  = "dvdauthor"
	defaultDVDAuthorTimeout = 3600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Render: Render{
			Comments: true,
		},
		DVDAuthor: DVDAuthor{
			Binary:  defaultDVDAuthorBinary,
			Timeout: defaultDVDAuthorTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		History: History{
			Enabled: true,
		},
	}
}
