package jobs

import (
	"github.com/application-research/edge-sftp/core"
)

type IProcessor interface {
	Info() error
	Run() error
}

type Processor struct {
	GatewayNode *core.GatewayNode
}
