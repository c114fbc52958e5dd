package cmd

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	cli "github.com/spf13/cobra"

	"github.com/meltano/kubernetes-ext/cmd/logger"
	"github.com/meltano/kubernetes-ext/config"
	"github.com/meltano/kubernetes-ext/ext/meltano"
	"github.com/meltano/kubernetes-ext/models"
)

func listCommand(conf *config.Config) *cli.Command {
	cmd := &cli.Command{
		Use:     "list",
		Short:   "List the project schedules and their CronJob eligibility",
		Example: "kubernetes-ext list",
	}

	cmd.RunE = func(cmd *cli.Command, args []string) error {
		l := logger.NewClientLogger(conf.Log)
		if err := config.Validate(conf); err != nil {
			return err
		}

		source, err := meltano.NewCLISource(
			meltano.NewExecRunner(conf.Meltano.Bin),
			conf.ProjectRoot,
			l,
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), renderTimeout)
		defer cancel()

		entries, err := source.ListSchedules(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			l.Info(coloredNotice("no schedules found in %s", conf.ProjectRoot))
			return nil
		}

		printScheduleList(cmd, entries, conf.Render.Sentinels)
		return nil
	}

	return cmd
}

func printScheduleList(cmd *cli.Command, entries []models.ScheduleEntry, sentinels []string) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetBorder(false)
	table.SetHeader([]string{
		"Name",
		"Interval",
		"Cron",
		"Extractor",
		"Loader",
		"CronJob",
	})

	for _, entry := range entries {
		eligibility := "yes"
		if entry.Classify(sentinels) == models.IntervalTypeSentinel {
			eligibility = fmt.Sprintf("skipped (%s)", entry.Interval)
		}
		extractor := entry.Extractor
		loader := entry.Loader
		if entry.Type() == models.ScheduleTypeJob {
			extractor = entry.Job
			loader = "-"
		}
		table.Append([]string{
			entry.Name,
			entry.Interval,
			entry.CronInterval,
			extractor,
			loader,
			eligibility,
		})
	}
	table.Render()
}
