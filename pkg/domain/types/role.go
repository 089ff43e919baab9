package types

import "github.com/m-mizutani/goerr/v2"

// TurnRole is the author of a chat turn
type TurnRole string

const (
	TurnRoleSystem    TurnRole = "system"
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
	TurnRoleTool      TurnRole = "tool"
)

// Validate checks if the TurnRole is one of the known roles
func (r TurnRole) Validate() error {
	switch r {
	case TurnRoleSystem, TurnRoleUser, TurnRoleAssistant, TurnRoleTool:
		return nil
	default:
		return goerr.New("invalid turn role", goerr.V("role", string(r)))
	}
}

func (r TurnRole) String() string {
	return string(r)
}
