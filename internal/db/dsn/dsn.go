package dsn

import (
	"fmt"

	"github.com/stafferly/stafferly/internal/config"
)

// FromDBConfig converts `config.Database` data to a DSN and returns it.
func FromDBConfig(conf config.Database) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		conf.Host, conf.User, conf.Password, conf.Name, conf.Port, conf.SSLMode)
}
