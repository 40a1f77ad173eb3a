package command

import (
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// Command is a marker interface for all commands.
// Commands are mediator requests; the dispatcher is the command bus.
type Command interface {
	mediator.AnyRequest

	// CommandName returns the name of the command for routing/logging.
	CommandName() string
}
