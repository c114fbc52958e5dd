package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	cli "github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meltano/kubernetes-ext/models"
)

func describeCommand() *cli.Command {
	var outputFormat string

	cmd := &cli.Command{
		Use:   "describe",
		Short: "Describe the capabilities of this extension",
		Long: heredoc.Doc(`Emits the capability discovery document the host orchestrator expects
			when probing an installed extension.`),
		Example: "kubernetes-ext describe --format yaml",
	}
	cmd.Flags().StringVar(&outputFormat, "format", "text", "output format, one of text, json, yaml")

	cmd.RunE = func(cmd *cli.Command, args []string) error {
		description := describeExtension()

		switch outputFormat {
		case "text":
			for _, command := range description.Commands {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", command.Name, command.Description)
			}
		case "json":
			content, err := json.MarshalIndent(description, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshalling description: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(content))
		case "yaml":
			content, err := yaml.Marshal(description)
			if err != nil {
				return fmt.Errorf("error marshalling description: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(content))
		default:
			return fmt.Errorf("unsupported format %q, use text, json or yaml", outputFormat)
		}
		return nil
	}

	return cmd
}

func describeExtension() models.Describe {
	return models.Describe{
		Commands: []models.ExtensionCommand{
			{
				Name:        "kubernetes",
				Description: "extension commands",
				Commands: []string{
					"render",
					"list",
					"initialize",
					"describe",
					"version",
				},
			},
		},
	}
}
