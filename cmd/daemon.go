package cmd

import (
	"time"

	"github.com/application-research/edge-sftp/api"
	"github.com/application-research/edge-sftp/config"
	"github.com/application-research/edge-sftp/core"
	"github.com/application-research/edge-sftp/jobs"
	"github.com/urfave/cli/v2"
)

func DaemonCmd(cfg *config.GatewayConfig) []*cli.Command {
	// add a command to run API node
	var daemonCommands []*cli.Command

	daemonCmd := &cli.Command{
		Name:  "daemon",
		Usage: "Run the HTTP gateway that proxies SFTP operations for clients that only speak JSON.",

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name: "port",
			},
			&cli.StringFlag{
				Name: "db-dsn",
			},
		},
		Action: func(c *cli.Context) error {

			if c.Int("port") != 0 {
				cfg.Node.Port = c.Int("port")
			}
			if c.String("db-dsn") != "" {
				cfg.Node.DbDsn = c.String("db-dsn")
			}

			node, err := core.NewGatewayNode(cfg)
			if err != nil {
				return err
			}

			//	launch the background pruner
			go runProcessors(node)

			// launch the API node
			api.InitializeEchoRouterConfig(node)

			return nil
		},
	}

	// add commands.
	daemonCommands = append(daemonCommands, daemonCmd)

	return daemonCommands
}

func runProcessors(node *core.GatewayNode) {

	pruneFreq := node.Config.Common.PruneIntervalSecs
	if pruneFreq <= 0 {
		pruneFreq = 3600
	}

	pruneFreqTick := time.NewTicker(time.Duration(pruneFreq) * time.Second)

	for range pruneFreqTick.C {
		pruneRun := jobs.NewLogPruneProcessor(node)
		d := jobs.CreateNewDispatcher()
		d.AddJob(pruneRun)
		d.Start(1)
	}
}
