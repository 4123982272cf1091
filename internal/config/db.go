package config

// Supported database engines.
const (
	// EngineMySQL selects the gorm MySQL driver.
	EngineMySQL = "mysql"
	// EnginePostgres selects the gorm PostgreSQL driver.
	EnginePostgres = "postgres"
	// EngineSQLite selects the embedded pure-Go SQLite driver (dev and test use).
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // one of mysql, postgres, sqlite
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // database file path, sqlite engine only
}
