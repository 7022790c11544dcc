package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/localeops/localeops-mcp/internal/tools"
)

func newToolsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		Long:  "Prints every tool with its description and input schema, exactly as tools/list reports them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := tools.NewRegistry().Tools()

			var (
				out []byte
				err error
			)
			switch format {
			case "json":
				out, err = json.MarshalIndent(catalog, "", "  ")
				out = append(out, '\n')
			case "yaml":
				out, err = yaml.Marshal(catalog)
			default:
				return fmt.Errorf("unknown format %q: use json or yaml", format)
			}
			if err != nil {
				return fmt.Errorf("encoding tool catalog: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "localeops-mcp %s\n", version)
		},
	}
}
