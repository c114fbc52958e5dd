package cmd

import (
	"fmt"

	"github.com/fatih/color"
	cli "github.com/spf13/cobra"

	"github.com/meltano/kubernetes-ext/config"
)

var prologueContents = `kubernetes-ext %s

kubernetes-ext renders meltano schedules as kubernetes CronJob manifests,
organized as a kustomize base with per environment overlays
`

var (
	disableColoredOut = false

	// colored print
	coloredNotice  = fmt.Sprintf
	coloredError   = fmt.Sprintf
	coloredSuccess = fmt.Sprintf
)

func programPrologue(ver string) string {
	return fmt.Sprintf(prologueContents, ver)
}

// New constructs the 'root' command.
// It houses all other sub commands
func New(conf *config.Config) *cli.Command {
	cmd := &cli.Command{
		Use:  "kubernetes-ext",
		Long: programPrologue(config.BuildVersion),
		PersistentPreRun: func(cmd *cli.Command, args []string) {
			// initialise color if not requested to be disabled
			if !disableColoredOut {
				coloredNotice = color.New(color.Bold, color.FgCyan).SprintfFunc()
				coloredError = color.New(color.Bold, color.FgHiRed).SprintfFunc()
				coloredSuccess = color.New(color.Bold, color.FgHiGreen).SprintfFunc()
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&disableColoredOut, "no-color", disableColoredOut, "disable colored output")

	cmd.AddCommand(renderCommand(conf))
	cmd.AddCommand(listCommand(conf))
	cmd.AddCommand(describeCommand())
	cmd.AddCommand(initializeCommand(conf))
	cmd.AddCommand(versionCommand())

	return cmd
}
