// Package configcmder provides the config command for managing persistent
// shelf configuration stored in the .shelf/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent shelf configuration.

Configuration is stored as config.toml in the .shelf/ directory and provides
default values for command flags. CLI flags and SHELF_* environment variables
always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  corpus.dir, corpus.extension,
  similarity.provider, similarity.min_df, similarity.max_df,
  similarity.max_ngram, similarity.workers,
  graph.policy, graph.threshold, graph.top_k, graph.distance,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  vector_store.provider, vector_store.target,
  api.listen

Use subcommands to get, set, or list configuration values:
  shelf config set <key> <value>    Set a configuration value
  shelf config get <key>            Get a configuration value
  shelf config list                 List all configuration values

Examples:
  shelf config set graph.policy topk
  shelf config set graph.top_k 2
  shelf config get corpus.dir
  shelf config list`

const configShortDesc string = "Manage persistent shelf configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
