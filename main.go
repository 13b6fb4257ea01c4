// It loads the configuration, registers the daemon command and hands control
// over to the cli app.
package main

import (
	"os"

	"github.com/application-research/edge-sftp/cmd"
	"github.com/application-research/edge-sftp/config"
	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var (
	log = logging.Logger("edge-sftp")
)

var Commit string
var Version string

func main() {

	cfg := config.InitConfig()

	// get all the commands
	var commands []*cli.Command
	commands = append(commands, cmd.DaemonCmd(&cfg)...)

	app := &cli.App{
		Name:     "edge-sftp",
		Usage:    "An HTTP/JSON gateway that lets clients without an SFTP stack test, browse and download from remote SFTP servers.",
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
