package config

const (
	defaultImagesDir    = "Images"
	defaultCatalogDB    = "catalog.db"
	defaultProgressFile = "progress.json"
	defaultLockFile     = "phototag.lock"
	defaultLogDir       = "logs"
	defaultOutputDir    = "ProcessedImages"
	defaultTinyWidth    = 150
	defaultSmallWidth   = 1024
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. Relative paths
// are resolved against the working directory during normalization, matching
// the workspace-folder convention the tool is operated in.
func Default() Config {
	return Config{
		Paths: Paths{
			ImagesDir:    defaultImagesDir,
			CatalogDB:    defaultCatalogDB,
			ProgressFile: defaultProgressFile,
			LockFile:     defaultLockFile,
			LogDir:       defaultLogDir,
		},
		Processing: Processing{
			OutputDir:  defaultOutputDir,
			TinyWidth:  defaultTinyWidth,
			SmallWidth: defaultSmallWidth,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
