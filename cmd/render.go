package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	cli "github.com/spf13/cobra"

	"github.com/meltano/kubernetes-ext/cmd/logger"
	"github.com/meltano/kubernetes-ext/config"
	"github.com/meltano/kubernetes-ext/ext/kustomize"
	"github.com/meltano/kubernetes-ext/ext/meltano"
)

var renderTimeout = time.Minute * 2

func renderCommand(conf *config.Config) *cli.Command {
	var outputDir string

	cmd := &cli.Command{
		Use:   "render [schedule_name...]",
		Short: "Render meltano schedules as kubernetes CronJobs in a kustomize base",
		Long: heredoc.Doc(`Reads the schedule list from the host meltano project and regenerates the
			kustomize base layer with one CronJob manifest per cron scheduled entry.

			The base layer is always regenerated fully, including kustomization.yaml,
			so manual edits there are discarded on every run. The overlay directory of
			the active environment is only scaffolded when missing and never touched
			afterwards, it is the supported place for customization.`),
		Example: heredoc.Doc(`
			kubernetes-ext render
			kubernetes-ext render gitlab-to-postgres
			kubernetes-ext render --output-dir /tmp/manifests
		`),
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "D", "", "destination directory for generated manifests")

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
		renderer, err := kustomize.NewRenderer(
			l,
			afero.NewOsFs(),
			source,
			kustomize.NewCompiler(conf.Render.Image, conf.Meltano.Bin),
			config.BuildVersion,
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), renderTimeout)
		defer cancel()

		err = renderer.Render(ctx, kustomize.RenderSpec{
			Destination:   conf.DestinationDir(outputDir),
			ProjectRoot:   conf.ProjectRoot,
			Environment:   conf.Environment,
			OnlySchedules: args,
			Sentinels:     conf.Render.Sentinels,
		})
		if err != nil {
			if errors.Is(err, meltano.ErrSourceUnavailable) {
				l.Error(coloredError("unable to query the meltano schedule list"))
			}
			var collision *kustomize.NameCollisionError
			if errors.As(err, &collision) {
				l.Error(coloredError("manifest names must be unique: %s", collision.Error()))
			}
			return err
		}

		l.Info(coloredSuccess("render complete"))
		return nil
	}

	return cmd
}
