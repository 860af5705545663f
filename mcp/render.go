package mcp

import (
	"fmt"

	"github.com/lvillar/policymcp"
)

// Failure is what a client sees when a handler fails: the action and the
// failure class, never the underlying cause. Tools return it as an error
// result, resources as the JSON-RPC error message.
type Failure struct {
	Action string
	Kind   policymcp.Kind
}

func (f *Failure) Error() string {
	return fmt.Sprintf("Failed to %s: %s", f.Action, f.Kind)
}

func newFailure(action string, err error) *Failure {
	return &Failure{Action: action, Kind: policymcp.KindOf(err)}
}
