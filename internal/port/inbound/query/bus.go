package query

import (
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// Query is a marker interface for all queries.
// Queries are mediator requests; the dispatcher is the query bus.
type Query interface {
	mediator.AnyRequest

	// QueryName returns the name of the query for routing/logging.
	QueryName() string
}
