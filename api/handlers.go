package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/planner"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PlanRequest is the body of POST /v1/plan.
type PlanRequest struct {
	// Read lists the items already read, by file name, ID or title.
	Read []string `json:"read"`
	// Want is the item the reader wants to reach.
	Want string `json:"want"`
}

// ItemsResponse lists the corpus.
type ItemsResponse struct {
	Items []recommend.Item `json:"items"`
	Count int              `json:"count"`
}

// GraphResponse summarises the similarity graph. Edges is only filled when
// requested with ?edges=true.
type GraphResponse struct {
	recommend.GraphStats
	EdgeList []recommend.Edge `json:"edge_list,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListItems returns every corpus item in index order.
func (s *Server) handleListItems(c *fiber.Ctx) error {
	items := s.rec.Items()
	return c.JSON(ItemsResponse{Items: items, Count: len(items)})
}

// handleGraph returns graph statistics and, optionally, the edge list.
func (s *Server) handleGraph(c *fiber.Ctx) error {
	stats, err := s.rec.Stats()
	if err != nil {
		s.logger.Error("failed to build graph", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to build graph"})
	}

	resp := GraphResponse{GraphStats: stats}
	if c.QueryBool("edges") {
		resp.EdgeList, err = s.rec.Edges()
		if err != nil {
			s.logger.Error("failed to list edges", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list edges"})
		}
	}
	return c.JSON(resp)
}

// handlePlan plans a reading path.
func (s *Server) handlePlan(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	req.Want = strings.TrimSpace(req.Want)
	if req.Want == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "want is required"})
	}

	rec, err := s.rec.Recommend(c.UserContext(), req.Read, req.Want)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			s.logger.Error("failed to plan", "want", req.Want, "error", err)
			return c.Status(status).JSON(ErrorResponse{Error: "failed to plan"})
		}
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(rec)
}

// statusFor maps recommender errors to HTTP status codes.
func statusFor(err error) int {
	var (
		unknownItem *corpus.UnknownItemError
		unknownNode *planner.UnknownNodeError
		noPath      *recommend.NoPathError
	)
	switch {
	case errors.As(err, &unknownItem), errors.As(err, &unknownNode):
		return fiber.StatusNotFound
	case errors.As(err, &noPath):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
