package config

import (
	"github.com/caarlos0/env/v6"
	logging "github.com/ipfs/go-log/v2"
	"github.com/joho/godotenv"
)

var (
	log = logging.Logger("config")
)

type GatewayConfig struct {
	Node struct {
		Name        string `env:"NODE_NAME" envDefault:"edge-sftp"`
		Description string `env:"NODE_DESCRIPTION" envDefault:"HTTP to SFTP gateway"`
		DbDsn       string `env:"DB_DSN" envDefault:"edge-sftp.db"`
		Port        int    `env:"PORT" envDefault:"3001"`
	}

	Sftp struct {
		// ConnectTimeout bounds the ssh dial, in seconds.
		ConnectTimeout int `env:"SFTP_CONNECT_TIMEOUT" envDefault:"15"`
		// ConnectRetries is only exercised by the connection test endpoint.
		ConnectRetries int `env:"SFTP_CONNECT_RETRIES" envDefault:"1"`
	}

	Common struct {
		// BodyLimit is passed straight to the echo body limit middleware.
		BodyLimit         string `env:"BODY_LIMIT" envDefault:"50M"`
		LogRetentionDays  int    `env:"LOG_RETENTION_DAYS" envDefault:"30"`
		PruneIntervalSecs int    `env:"PRUNE_INTERVAL" envDefault:"3600"`
	}
}

func InitConfig() GatewayConfig {
	godotenv.Load() // load from environment OR .env file if it exists
	var cfg GatewayConfig

	if err := env.Parse(&cfg); err != nil {
		log.Fatal("error parsing config: %+v\n", err)
	}

	log.Debug("config parsed successfully")

	return cfg
}
