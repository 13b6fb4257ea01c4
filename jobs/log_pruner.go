package jobs

import (
	"time"

	"github.com/application-research/edge-sftp/core"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("jobs")

type LogPruneProcessor struct {
	Processor
	retentionDays int
}

func NewLogPruneProcessor(node *core.GatewayNode) IProcessor {
	return &LogPruneProcessor{
		Processor: Processor{
			GatewayNode: node,
		},
		retentionDays: node.Config.Common.LogRetentionDays,
	}
}

func (r *LogPruneProcessor) Info() error {
	log.Infof("pruning transfer logs older than %d days", r.retentionDays)
	return nil
}

// Run deletes transfer log rows past the retention window.
func (r *LogPruneProcessor) Run() error {
	cutoff := time.Now().AddDate(0, 0, -r.retentionDays)

	result := r.GatewayNode.DB.Where("created_at < ?", cutoff).Delete(&core.TransferLog{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Infof("pruned %d transfer log rows", result.RowsAffected)
	}
	return nil
}
