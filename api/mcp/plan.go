package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/shelf/pkg/recommend"
)

var (
	readingPlanToolName    = "reading_plan"
	readingPlanDescription = "Plan what to read next. Given the items already read and one wanted item, returns the shortest chain of similar items leading from a read item to the wanted one."

	listItemsToolName    = "list_items"
	listItemsDescription = "List every item on the shelf with its index, id and title."
)

// ReadingPlanInput represents the input arguments for the reading_plan tool.
type ReadingPlanInput struct {
	Read []string `json:"read" jsonschema:"items already read, by file name, id or title"`
	Want string   `json:"want" jsonschema:"the item to reach"`
}

// ReadingPlanOutput represents the output of the reading_plan tool.
type ReadingPlanOutput struct {
	Want     string   `json:"want"`
	From     string   `json:"from"`
	Steps    []string `json:"steps"`
	Distance float64  `json:"distance"`
}

// ListItemsInput is empty; the tool takes no arguments.
type ListItemsInput struct{}

// ListItemsOutput represents the output of the list_items tool.
type ListItemsOutput struct {
	Items []recommend.Item `json:"items"`
	Count int              `json:"count"`
}

// handleReadingPlan processes a reading_plan request. Planning failures are
// reported to the client as tool errors, not protocol errors.
func (s *Server) handleReadingPlan(ctx context.Context, _ *mcp.CallToolRequest, input ReadingPlanInput) (*mcp.CallToolResult, ReadingPlanOutput, error) {
	logger := s.config.Logger

	logger.Debug("MCP reading plan request",
		"read", input.Read,
		"want", input.Want,
	)

	rec, err := s.config.Recommender.Recommend(ctx, input.Read, input.Want)
	if err != nil {
		logger.Debug("MCP reading plan failed", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to plan: %v", err)},
			},
		}, ReadingPlanOutput{}, nil
	}

	output := ReadingPlanOutput{
		Want:     rec.Want.Title,
		From:     rec.From.Title,
		Steps:    make([]string, len(rec.Steps)),
		Distance: rec.Distance,
	}
	for i, step := range rec.Steps {
		output.Steps[i] = step.Title
	}

	return nil, output, nil
}

// handleListItems returns the shelf contents.
func (s *Server) handleListItems(_ context.Context, _ *mcp.CallToolRequest, _ ListItemsInput) (*mcp.CallToolResult, ListItemsOutput, error) {
	items := s.config.Recommender.Items()
	return nil, ListItemsOutput{Items: items, Count: len(items)}, nil
}
