package storage

// DbType identifies a supported storage engine
type DbType string

const (
	DbTypeSQLite   DbType = "sqlite"
	DbTypePostgres DbType = "postgres"
)

func (t DbType) String() string {
	return string(t)
}

// IsValid reports whether the type names a supported engine
func (t DbType) IsValid() bool {
	switch t {
	case DbTypeSQLite, DbTypePostgres:
		return true
	default:
		return false
	}
}

// DbProviderConfig is the JSON configuration accepted by the provider factory
type DbProviderConfig struct {
	DbType       DbType                 `json:"db_type"`
	ExtraDetails map[string]interface{} `json:"extra_details"`
}
