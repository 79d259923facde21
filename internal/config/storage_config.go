package config

const (
	tokenFileVar = "TOKEN_FILE"
)

type StorageConfig interface {
	GetTokenFile() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetTokenFile returns the path of the file holding the persisted bearer
// token. An empty value disables persistence entirely.
func (Storage) GetTokenFile() string {
	return GetEnv(tokenFileVar, ".harvestly-token")
}
