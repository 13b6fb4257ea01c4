package core

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenDatabase(dsn string) (*gorm.DB, error) {

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	DB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// generate new models.
	ConfigureModels(DB) // create models.

	return DB, nil
}

func ConfigureModels(db *gorm.DB) {
	db.AutoMigrate(&TransferLog{})
}

// TransferLog is one row per SFTP operation served over HTTP. Credentials are
// never written here.
type TransferLog struct {
	ID         int64     `gorm:"primaryKey"`
	RequestID  string    `json:"request_id"`
	Operation  string    `json:"operation"`
	Host       string    `json:"host"`
	Port       int       `json:"port"`
	RemotePath string    `json:"remote_path"`
	Assureur   string    `json:"assureur"`
	Status     string    `json:"status"`
	Message    string    `json:"last_message"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
