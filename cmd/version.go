package cmd

import (
	"fmt"

	cli "github.com/spf13/cobra"

	"github.com/meltano/kubernetes-ext/cmd/logger"
	"github.com/meltano/kubernetes-ext/config"
)

func versionCommand() *cli.Command {
	cmd := &cli.Command{
		Use:     "version",
		Short:   "Print the extension version information",
		Example: "kubernetes-ext version",
	}

	cmd.RunE = func(cmd *cli.Command, args []string) error {
		l := logger.NewDefaultLogger()
		version := config.BuildVersion
		if config.BuildCommit != "" {
			version = fmt.Sprintf("%s-%s", config.BuildVersion, config.BuildCommit)
		}
		l.Info(coloredNotice("kubernetes-ext %s", version))
		if config.BuildDate != "" {
			l.Info(fmt.Sprintf("built on %s", config.BuildDate))
		}
		return nil
	}

	return cmd
}
