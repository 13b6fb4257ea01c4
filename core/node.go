package core

import (
	"time"

	"github.com/application-research/edge-sftp/config"
	"gorm.io/gorm"
)

type GatewayNode struct {
	DB        *gorm.DB
	Dialer    Dialer
	Config    *config.GatewayConfig
	StartTime time.Time
}

// NewGatewayNode opens the database and wires the ssh dialer. The dialer is a
// field so tests can swap in a fake without touching the handlers.
func NewGatewayNode(cfg *config.GatewayConfig) (*GatewayNode, error) {

	db, err := OpenDatabase(cfg.Node.DbDsn)
	if err != nil {
		return nil, err
	}

	return &GatewayNode{
		DB: db,
		Dialer: &SSHDialer{
			ConnectTimeout: time.Duration(cfg.Sftp.ConnectTimeout) * time.Second,
		},
		Config:    cfg,
		StartTime: time.Now(),
	}, nil
}

func (node *GatewayNode) Uptime() time.Duration {
	return time.Since(node.StartTime)
}
