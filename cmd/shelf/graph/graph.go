// Package graphcmder provides the graph command for inspecting the
// similarity graph a corpus produces.
package graphcmder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/pkg/cliui"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

type graphCommander struct {
	edges bool
	json  bool

	graph     config.GraphFlagValues
	configDir string
	debug     bool
}

// Output is the JSON form of the graph command.
type Output struct {
	recommend.GraphStats
	EdgeList []recommend.Edge `json:"edge_list,omitempty"`
}

const graphLongDesc string = `Show the similarity graph built from the corpus.

Prints the number of items and links, the connected components and the items
that are not linked to anything. Isolated items can never appear in a plan;
lower the threshold or switch to the topk policy to connect them.

Examples:
  shelf graph
  shelf graph --edges
  shelf graph --policy topk --top-k 2 --json`

const graphShortDesc string = "Show the similarity graph"

func NewGraphCmd() *cobra.Command {
	cmder := &graphCommander{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: graphShortDesc,
		Long:  graphLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			return cmder.run(cmd)
		},
	}

	cmd.Flags().BoolVarP(&cmder.edges, "edges", "e", false, "List every edge")
	cmd.Flags().BoolVar(&cmder.json, "json", false, "Print the graph as JSON")
	config.AddGraphFlags(cmd, &cmder.graph)

	return cmd
}

func (c *graphCommander) run(cmd *cobra.Command) error {
	log := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	cfg, dir, err := config.ResolveFlags(cmd, c.configDir, config.GraphFlags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rec, err := recommend.FromConfig(cmd.Context(), cfg, dir, nil, log)
	if err != nil {
		return err
	}

	out := Output{}
	out.GraphStats, err = rec.Stats()
	if err != nil {
		return err
	}
	if c.edges {
		out.EdgeList, err = rec.Edges()
		if err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	Render(w, out)
	return nil
}

// Render prints graph statistics and, when present, the edge list.
func Render(w io.Writer, out Output) {
	row := func(key, value string) {
		fmt.Fprintf(w, "  %-12s %s\n", cliui.KeyStyle.Render(key), cliui.ValueStyle.Render(value))
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.TitleStyle.Render("Similarity graph"))
	row("policy", out.Policy)
	row("distance", out.Transform)
	row("items", fmt.Sprintf("%d", out.Nodes))
	row("edges", fmt.Sprintf("%d", out.Edges))
	row("components", fmt.Sprintf("%d", out.Components))
	row("mean degree", fmt.Sprintf("%.2f", out.MeanDegree))

	if len(out.Isolated) > 0 {
		titles := make([]string, len(out.Isolated))
		for i, item := range out.Isolated {
			titles[i] = item.Title
		}
		row("isolated", strings.Join(titles, ", "))
	}

	if len(out.EdgeList) > 0 {
		fmt.Fprintf(w, "\n  %s\n\n", cliui.TitleStyle.Render("Edges"))
		for _, e := range out.EdgeList {
			fmt.Fprintf(w, "  %s %s %s %s\n",
				e.From.Title,
				cliui.DimStyle.Render("—"),
				e.To.Title,
				cliui.DimStyle.Render(fmt.Sprintf("(%.3f)", e.Weight)),
			)
		}
	}
	fmt.Fprintln(w)
}
