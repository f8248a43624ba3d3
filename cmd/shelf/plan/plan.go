// Package plancmder provides the plan command for planning a reading path to
// one wanted item.
package plancmder

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/pkg/cliui"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/dotdir"
	"github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

type planCommander struct {
	read     []string
	want     string
	json     bool
	all      bool
	markdown bool

	graph     config.GraphFlagValues
	configDir string

	debug  bool
	logger *slog.Logger
}

const planLongDesc string = `Plan a reading path to the wanted item.

Shelf links items whose text is similar, then finds the cheapest chain of
links from any item you have read to the item you want. The plan starts at
the read item closest to the target and lists every item to read on the way.

Items are named by file name, file name without extension, or title.
When --read is not given, the items recorded with "shelf read add" are used.

Examples:
  shelf plan --read little-red-hen --want deep-sea-voyage
  shelf plan -r little-red-hen -r farmyard-tales -w "Deep Sea Voyage" --all
  shelf plan --want deep-sea-voyage --policy topk --top-k 2
  shelf plan --want deep-sea-voyage --json`

const planShortDesc string = "Plan a reading path"

func NewPlanCmd() *cobra.Command {
	cmder := &planCommander{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: planShortDesc,
		Long:  planLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&cmder.read, "read", "r", nil, "Items already read (repeatable or comma separated)")
	cmd.Flags().StringVarP(&cmder.want, "want", "w", "", "Item to reach")
	cmd.Flags().BoolVar(&cmder.json, "json", false, "Print the plan as JSON")
	cmd.Flags().BoolVarP(&cmder.all, "all", "a", false, "Also print the route from every read item")
	cmd.Flags().BoolVarP(&cmder.markdown, "markdown", "m", false, "Render the plan as markdown")
	config.AddGraphFlags(cmd, &cmder.graph)
	_ = cmd.MarkFlagRequired("want")

	return cmd
}

func (c *planCommander) run(cmd *cobra.Command) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	cfg, dir, err := config.ResolveFlags(cmd, c.configDir, config.GraphFlags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	read := c.read
	if len(read) == 0 {
		log, err := dotdir.NewManager().LoadReadLog(c.configDir)
		if err != nil {
			return err
		}
		read = log.Items
		c.logger.Debug("using read log", "items", len(read))
	}

	var rec *recommend.Recommender
	err = cliui.Step(cmd.ErrOrStderr(), "Building similarity graph", func() error {
		var err error
		rec, err = recommend.FromConfig(cmd.Context(), cfg, dir, nil, c.logger)
		if err != nil {
			return err
		}
		_, err = rec.Graph()
		return err
	})
	if err != nil {
		return err
	}

	plan, err := rec.Recommend(cmd.Context(), read, c.want)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case c.json:
		return writeJSON(w, plan, c.all)
	case c.markdown:
		rendered, err := cliui.RenderMarkdown(Markdown(plan, c.all))
		if err != nil {
			c.logger.Warn("rendering markdown", "error", err)
		}
		fmt.Fprint(w, rendered)
		return nil
	default:
		Render(w, plan, c.all)
		return nil
	}
}

func writeJSON(w io.Writer, plan *recommend.Recommendation, all bool) error {
	out := *plan
	if !all {
		out.Routes = nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Render prints a styled reading plan.
func Render(w io.Writer, plan *recommend.Recommendation, all bool) {
	fmt.Fprintf(w, "\n  %s %s %s %s\n\n",
		cliui.TitleStyle.Render("Reading plan:"),
		cliui.ValueStyle.Render(plan.From.Title),
		cliui.DimStyle.Render("→"),
		cliui.ValueStyle.Render(plan.Want.Title),
	)

	if len(plan.Next()) == 0 {
		fmt.Fprintf(w, "  %s %s\n\n", cliui.SuccessMark, cliui.DimStyle.Render("already read"))
	} else {
		for i, step := range plan.Steps {
			line := fmt.Sprintf("  %s %s", cliui.RankStyle.Render(fmt.Sprintf("%d.", i+1)), step.Title)
			if i == 0 {
				line += " " + cliui.DimStyle.Render("(read)")
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintf(w, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("distance"),
			cliui.DimStyle.Render(fmt.Sprintf("%.3f", plan.Distance)),
		)
	}

	if !all {
		return
	}

	fmt.Fprintf(w, "  %s\n\n", cliui.TitleStyle.Render("Routes from every read item:"))
	for _, route := range plan.Routes {
		if !route.Reachable {
			fmt.Fprintf(w, "  %s %s %s\n", cliui.FailMark, route.From.Title, cliui.DimStyle.Render("not connected"))
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n    %s\n",
			cliui.SuccessMark,
			route.From.Title,
			cliui.DimStyle.Render(fmt.Sprintf("(%.3f)", route.Distance)),
			cliui.DimStyle.Render(strings.Join(titles(route.Steps), " → ")),
		)
	}
	fmt.Fprintln(w)
}

// Markdown formats a reading plan as a markdown document.
func Markdown(plan *recommend.Recommendation, all bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Reading plan: %s\n\n", plan.Want.Title)
	fmt.Fprintf(&b, "Starting from **%s** (distance %.3f).\n\n", plan.From.Title, plan.Distance)

	for i, step := range plan.Steps {
		if i == 0 {
			fmt.Fprintf(&b, "%d. ~~%s~~\n", i+1, step.Title)
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Title)
	}

	if all && len(plan.Routes) > 0 {
		b.WriteString("\n## Routes\n\n")
		b.WriteString("| From | Distance | Path |\n|---|---|---|\n")
		for _, route := range plan.Routes {
			if !route.Reachable {
				fmt.Fprintf(&b, "| %s | - | not connected |\n", route.From.Title)
				continue
			}
			fmt.Fprintf(&b, "| %s | %.3f | %s |\n", route.From.Title, route.Distance, strings.Join(titles(route.Steps), " → "))
		}
	}

	return b.String()
}

func titles(items []recommend.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}
