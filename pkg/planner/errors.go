package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownNodeError is returned when a requested index is not a node of the graph.
type UnknownNodeError struct {
	Node int
}

func (e *UnknownNodeError) Error() string {
	return "unknown node: " + strconv.Itoa(e.Node)
}

// NoPathError is returned when none of the read nodes is reachable from the
// wanted node, including when the read set is empty.
type NoPathError struct {
	Want int
	Read []int
}

func (e *NoPathError) Error() string {
	if len(e.Read) == 0 {
		return fmt.Sprintf("no path to node %d: no read nodes given", e.Want)
	}

	read := make([]string, len(e.Read))
	for i, r := range e.Read {
		read[i] = strconv.Itoa(r)
	}
	return fmt.Sprintf("no path to node %d from any of [%s]", e.Want, strings.Join(read, ", "))
}
