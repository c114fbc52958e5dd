package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	cli "github.com/spf13/cobra"

	"github.com/meltano/kubernetes-ext/cmd/logger"
	"github.com/meltano/kubernetes-ext/config"
)

func initializeCommand(conf *config.Config) *cli.Command {
	var force bool

	cmd := &cli.Command{
		Use:     "initialize",
		Short:   "Prepare the manifest output directories inside the project",
		Example: "kubernetes-ext initialize",
	}
	cmd.Flags().BoolVar(&force, "force", force, "recreate directories even when they already exist")

	cmd.RunE = func(cmd *cli.Command, args []string) error {
		l := logger.NewClientLogger(conf.Log)
		if err := config.Validate(conf); err != nil {
			return err
		}

		fs := afero.NewOsFs()
		destination := conf.DestinationDir("")
		dirs := []string{
			filepath.Join(destination, "base"),
			filepath.Join(destination, "overlays"),
		}
		for _, dir := range dirs {
			exists, err := afero.DirExists(fs, dir)
			if err != nil {
				return fmt.Errorf("error checking %s: %w", dir, err)
			}
			if exists && !force {
				l.Debug(fmt.Sprintf("%s already exists", dir))
				continue
			}
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating %s: %w", dir, err)
			}
			l.Info(fmt.Sprintf("created %s", dir))
		}

		l.Info(coloredSuccess("initialization complete"))
		return nil
	}

	return cmd
}
