package config

type Config interface {
	EnvConfig
	BackendConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Backend
	Storage
}

func New() Config {
	return mainConfig{}
}
