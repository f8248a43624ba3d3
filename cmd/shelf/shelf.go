// Package shelfcmder
package shelfcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/shelf/cmd/shelf/config"
	graphcmder "github.com/papercomputeco/shelf/cmd/shelf/graph"
	initcmder "github.com/papercomputeco/shelf/cmd/shelf/init"
	itemscmder "github.com/papercomputeco/shelf/cmd/shelf/items"
	plancmder "github.com/papercomputeco/shelf/cmd/shelf/plan"
	readcmder "github.com/papercomputeco/shelf/cmd/shelf/read"
	servecmder "github.com/papercomputeco/shelf/cmd/shelf/serve"
	versioncmder "github.com/papercomputeco/shelf/cmd/version"
)

const shelfLongDesc string = `Shelf recommends what to read next.

Every document in the corpus directory becomes an item. Items with similar
text are linked, and shelf finds the shortest chain of links from something
you have read to something you want to read.

Get started using:
  shelf init                                  Create a .shelf/ directory
  shelf read add little-red-hen               Mark an item as read
  shelf plan --want deep-sea-voyage           Plan a path to an item
  shelf serve                                 Run the API server`

const shelfShortDesc string = "Shelf - Reading Plans"

func NewShelfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shelf",
		Short:        shelfShortDesc,
		Long:         shelfLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .shelf/ config directory")

	// Add subcommands
	cmd.AddCommand(plancmder.NewPlanCmd())
	cmd.AddCommand(readcmder.NewReadCmd())
	cmd.AddCommand(itemscmder.NewItemsCmd())
	cmd.AddCommand(graphcmder.NewGraphCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
