// Package initcmder provides the init command for initializing a local .shelf
// directory in the current working directory.
package initcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/shelf/pkg/cliui"
	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/dotdir"
)

const fetchTimeout = 10 * time.Second

type initCommander struct {
	preset string
}

const initLongDesc string = `Initialize a new .shelf/ directory in the current working directory.

Creates a local .shelf/ directory that takes precedence over the default
~/.shelf/ directory, and writes a config.toml into it. An existing
config.toml is kept unless --preset is given.

Presets:
  tfidf     TF-IDF similarity with the threshold policy (default)
  topk      TF-IDF similarity with the topk policy
  ollama    Ollama embeddings cached in sqlite

--preset also accepts an http(s) URL of a config.toml to fetch.

Examples:
  shelf init
  shelf init --preset ollama
  shelf init --preset https://example.com/shelf/config.toml`

const initShortDesc string = "Initialize a local .shelf/ directory"

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "", "Config preset name or URL ("+strings.Join(config.ValidPresetNames(), ", ")+")")

	return cmd
}

func (c *initCommander) run(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	// Resolve the preset first so a bad one leaves no directory behind.
	var cfg *config.Config
	switch {
	case c.preset == "":
		cfg = config.NewDefaultConfig()
	case strings.HasPrefix(c.preset, "http://"), strings.HasPrefix(c.preset, "https://"):
		cfg, err = fetchConfig(cmd.Context(), c.preset)
	default:
		cfg, err = config.PresetConfig(c.preset)
	}
	if err != nil {
		return err
	}

	dir, created, err := dotdir.NewManager().Init(cwd)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "  %s Initialized %s\n", cliui.SuccessMark, cliui.ValueStyle.Render(dir))
	} else {
		fmt.Fprintf(w, "  %s Already initialized: %s\n", cliui.SuccessMark, cliui.DimStyle.Render(dir))
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, statErr := os.Stat(cfger.GetTarget())
	exists := statErr == nil
	if exists && c.preset == "" {
		fmt.Fprintf(w, "  %s Kept existing %s\n", cliui.SuccessMark, cliui.DimStyle.Render(filepath.Base(cfger.GetTarget())))
		return nil
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "  %s Wrote %s\n", cliui.SuccessMark, cliui.ValueStyle.Render(cfger.GetTarget()))
	return nil
}

// fetchConfig downloads and parses a remote config.toml.
func fetchConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("fetching remote config: empty response")
	}

	return config.ParseConfigTOML(data)
}
