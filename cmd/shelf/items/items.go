// Package itemscmder provides the items command for listing the corpus.
package itemscmder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/pkg/cliui"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/dotdir"
	"github.com/papercomputeco/shelf/pkg/utils"
)

const excerptLen = 60

type itemsCommander struct {
	corpusDir string
	extension string
	json      bool
	configDir string
}

const itemsLongDesc string = `List every item in the corpus.

Items are listed in index order, which is the sorted order of their file
names. Items recorded with "shelf read add" are marked.

Examples:
  shelf items
  shelf items --corpus ./books --extension .md
  shelf items --json`

const itemsShortDesc string = "List corpus items"

func NewItemsCmd() *cobra.Command {
	cmder := &itemsCommander{}

	cmd := &cobra.Command{
		Use:   "items",
		Short: itemsShortDesc,
		Long:  itemsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagCorpusDir, &cmder.corpusDir)
	config.AddStringFlag(cmd, config.Registry, config.FlagExtension, &cmder.extension)
	cmd.Flags().BoolVar(&cmder.json, "json", false, "Print items as JSON")

	return cmd
}

func (c *itemsCommander) run(cmd *cobra.Command) error {
	cfg, _, err := config.ResolveFlags(cmd, c.configDir, []string{config.FlagCorpusDir, config.FlagExtension})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	catalog, err := corpus.LoadDir(cfg.Corpus.Dir, cfg.Corpus.Extension)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.Documents())
	}

	log, err := dotdir.NewManager().LoadReadLog(c.configDir)
	if err != nil {
		return err
	}
	read := make(map[string]bool, len(log.Items))
	for _, id := range log.Items {
		read[id] = true
	}

	Render(w, catalog, read)
	return nil
}

// Render prints one line per item with a short excerpt of its text.
func Render(w io.Writer, catalog *corpus.Catalog, read map[string]bool) {
	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.TitleStyle.Render("Items:"),
		cliui.DimStyle.Render(fmt.Sprintf("%d", catalog.Len())),
	)

	for _, doc := range catalog.Documents() {
		mark := " "
		if read[doc.ID] {
			mark = cliui.SuccessMark
		}
		fmt.Fprintf(w, "  %s %s %s %s\n      %s\n",
			mark,
			cliui.RankStyle.Render(fmt.Sprintf("%3d", doc.Index)),
			cliui.ValueStyle.Render(doc.Title),
			cliui.DimStyle.Render(doc.ID),
			cliui.DimStyle.Render(utils.Excerpt(doc.Text, excerptLen)),
		)
	}
	fmt.Fprintln(w)
}
