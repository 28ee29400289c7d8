package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRefreshEtasCommandIsNotConstructed = errors.New(
	"RefreshEtasCommand must be created via NewRefreshEtasCommand constructor",
)

// RefreshEtasCommand triggers a re-estimate of the delivery ETA for every
// active tracking, from its current location to its destination. Run
// periodically by the background scheduler.
type RefreshEtasCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshEtasCommand creates a command to refresh tracking ETAs.
// This is a parameterless batch command.
func NewRefreshEtasCommand() RefreshEtasCommand {
	return RefreshEtasCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RefreshEtasCommand) Validate() error {
	return c.guard.Validate(ErrRefreshEtasCommandIsNotConstructed)
}
