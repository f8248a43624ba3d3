package recommend

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/planner"
)

// Item is a corpus item as shown to users.
type Item struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

func itemOf(doc corpus.Document) Item {
	return Item{Index: doc.Index, ID: doc.ID, Title: doc.Title}
}

// Route is the shortest route from one read item to the wanted item.
type Route struct {
	From      Item    `json:"from"`
	Reachable bool    `json:"reachable"`
	Distance  float64 `json:"distance,omitempty"`
	Steps     []Item  `json:"steps,omitempty"`
}

// Recommendation is a reading plan resolved to corpus items. Steps runs from
// From (an already read item) to Want, inclusive.
type Recommendation struct {
	Want     Item    `json:"want"`
	From     Item    `json:"from"`
	Steps    []Item  `json:"steps"`
	Distance float64 `json:"distance"`

	// Routes holds the route from every read item, ordered by index.
	Routes []Route `json:"routes,omitempty"`
}

// Next returns the steps still to be read: Steps without the starting item.
func (r *Recommendation) Next() []Item {
	if len(r.Steps) <= 1 {
		return nil
	}
	return r.Steps[1:]
}

// GraphStats summarises the similarity graph.
type GraphStats struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Components int     `json:"components"`
	Isolated   []Item  `json:"isolated"`
	MeanDegree float64 `json:"mean_degree"`
	Policy     string  `json:"policy"`
	Transform  string  `json:"transform"`
}

// Edge is a graph edge resolved to corpus items.
type Edge struct {
	From   Item    `json:"from"`
	To     Item    `json:"to"`
	Weight float64 `json:"weight"`
}

// NoPathError is returned when no read item connects to the wanted item. It
// wraps the *planner.NoPathError it was translated from.
type NoPathError struct {
	Want string
	Read []string

	err *planner.NoPathError
}

func (e *NoPathError) Error() string {
	if len(e.Read) == 0 {
		return fmt.Sprintf("no reading plan for %q: nothing has been read yet", e.Want)
	}
	return fmt.Sprintf("no reading plan for %q: it is not connected to any of %s",
		e.Want, strings.Join(quoted(e.Read), ", "))
}

func (e *NoPathError) Unwrap() error {
	return e.err
}

func quoted(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
