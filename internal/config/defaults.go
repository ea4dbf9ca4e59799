package config

const (
	defaultScratchDir     = "~/.local/share/bookbind/scratch"
	defaultLogDir         = "~/.local/share/bookbind/logs"
	defaultFormatVersion  = 2
	defaultListStyle      = "table"
	defaultStaleAfterDays = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultValidator      = "epubcheck"
)

func defaultContentDirs() []string {
	return []string{"Text", "Styles", "Images", "Fonts"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		Archive: Archive{
			FormatVersion: defaultFormatVersion,
			ContentDirs:   defaultContentDirs(),
		},
		Tools: Tools{
			Validator: defaultValidator,
		},
		Sessions: Sessions{
			ListStyle:      defaultListStyle,
			StaleAfterDays: defaultStaleAfterDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
