package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-registry/catalog"
)

func newDumpCmd(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the merged catalog as YAML",
		Long: `Print the merged catalog as a stream of !provider documents.

The output can be loaded again with --catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := state.buildCatalog(cmd)
			if err != nil {
				return err
			}

			return built.Dump(cmd.OutOrStdout())
		},
	}
}

func newProvidersCmd(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the providers with their priority and plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := state.buildCatalog(cmd)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tPRIORITY\tPLUGINS")

			for _, name := range built.Names() {
				provider := built[name]
				fmt.Fprintf(writer, "%s\t%s\t%s\n", name, priority(provider), plugins(provider))
			}

			return writer.Flush()
		},
	}
}

func newValidateCmd(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Build the catalog and report whether every layer applies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := state.buildCatalog(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog valid: %d providers\n", len(built))

			return nil
		},
	}
}

func priority(provider *catalog.ProviderConfig) string {
	if provider.Priority == nil {
		return "-"
	}

	return strconv.Itoa(*provider.Priority)
}

func plugins(provider *catalog.ProviderConfig) string {
	var out []string

	for _, slot := range catalog.PluginSlots() {
		if plugin := provider.Plugin(slot); plugin != nil {
			out = append(out, slot+"="+plugin.Type)
		}
	}

	return strings.Join(out, ",")
}
