// Package readcmder provides the read command for recording which corpus
// items have been read.
package readcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/pkg/cliui"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/dotdir"
)

const readLongDesc string = `Record the items you have read.

The reading log is stored as read.json in the .shelf/ directory. "shelf plan"
uses it whenever --read is not given.

Items are named by file name, file name without extension, or title, and are
stored by file name.

Examples:
  shelf read add little-red-hen "Farmyard Tales"
  shelf read remove farmyard-tales
  shelf read list
  shelf read clear`

const readShortDesc string = "Record the items you have read"

var corpusFlags = []string{config.FlagCorpusDir, config.FlagExtension}

type readCommander struct {
	corpusDir string
	extension string
	configDir string
}

func NewReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: readShortDesc,
		Long:  readLongDesc,
	}

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func newCommander(cmd *cobra.Command) *readCommander {
	cmder := &readCommander{}
	config.AddStringFlag(cmd, config.Registry, config.FlagCorpusDir, &cmder.corpusDir)
	config.AddStringFlag(cmd, config.Registry, config.FlagExtension, &cmder.extension)
	return cmder
}

func newAddCmd() *cobra.Command {
	var cmder *readCommander
	cmd := &cobra.Command{
		Use:   "add <item>...",
		Short: "Mark items as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return cmder.runAdd(cmd, args)
		},
	}
	cmder = newCommander(cmd)
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var cmder *readCommander
	cmd := &cobra.Command{
		Use:   "remove <item>...",
		Short: "Unmark items as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return cmder.runRemove(cmd, args)
		},
	}
	cmder = newCommander(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	var cmder *readCommander
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items marked as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return cmder.runList(cmd)
		},
	}
	cmder = newCommander(cmd)
	return cmd
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every item marked as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			if err := dotdir.NewManager().ClearReadLog(configDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s Cleared the reading log\n", cliui.SuccessMark)
			return nil
		},
	}
	return cmd
}

func (c *readCommander) catalog(cmd *cobra.Command) (*corpus.Catalog, error) {
	cfg, _, err := config.ResolveFlags(cmd, c.configDir, corpusFlags)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return corpus.LoadDir(cfg.Corpus.Dir, cfg.Corpus.Extension)
}

func (c *readCommander) runAdd(cmd *cobra.Command, names []string) error {
	catalog, err := c.catalog(cmd)
	if err != nil {
		return err
	}

	ids := make([]string, len(names))
	for i, name := range names {
		idx, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		doc, _ := catalog.Document(idx)
		ids[i] = doc.ID
	}

	ddm := dotdir.NewManager()
	log, err := ddm.LoadReadLog(c.configDir)
	if err != nil {
		return err
	}
	added := log.Add(ids...)
	if err := ddm.SaveReadLog(log, c.configDir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s Marked %d item(s) as read %s\n",
		cliui.SuccessMark, added,
		cliui.DimStyle.Render(fmt.Sprintf("(%d total)", len(log.Items))),
	)
	return nil
}

func (c *readCommander) runRemove(cmd *cobra.Command, names []string) error {
	ids := append([]string(nil), names...)

	// Names that still resolve are removed by ID too, so titles work.
	if catalog, err := c.catalog(cmd); err == nil {
		for _, name := range names {
			if idx, err := catalog.Lookup(name); err == nil {
				doc, _ := catalog.Document(idx)
				ids = append(ids, doc.ID)
			}
		}
	}

	ddm := dotdir.NewManager()
	log, err := ddm.LoadReadLog(c.configDir)
	if err != nil {
		return err
	}
	removed := log.Remove(ids...)
	if err := ddm.SaveReadLog(log, c.configDir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s Unmarked %d item(s) %s\n",
		cliui.SuccessMark, removed,
		cliui.DimStyle.Render(fmt.Sprintf("(%d total)", len(log.Items))),
	)
	return nil
}

func (c *readCommander) runList(cmd *cobra.Command) error {
	log, err := dotdir.NewManager().LoadReadLog(c.configDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(log.Items) == 0 {
		fmt.Fprintf(w, "  %s\n", cliui.DimStyle.Render("Nothing marked as read."))
		return nil
	}

	// A missing corpus only loses the titles.
	catalog, _ := c.catalog(cmd)
	printLog(w, log, catalog)
	return nil
}

func printLog(w io.Writer, log *dotdir.ReadLog, catalog *corpus.Catalog) {
	for _, id := range log.Items {
		title := corpus.TitleFromName(id)
		missing := false
		if catalog != nil {
			if idx, err := catalog.Lookup(id); err == nil {
				doc, _ := catalog.Document(idx)
				title = doc.Title
			} else {
				missing = true
			}
		}

		line := fmt.Sprintf("  %s %s", cliui.ValueStyle.Render(title), cliui.DimStyle.Render(id))
		if missing {
			line += " " + cliui.FailMark + cliui.DimStyle.Render(" not in corpus")
		}
		fmt.Fprintln(w, line)
	}
}
