package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/lvillar/policymcp"
	"github.com/lvillar/policymcp/registry"
)

// ToolCreateUser is the name of the user creation tool.
const ToolCreateUser = "create-user"

func createUserTool() mcpgo.Tool {
	return mcpgo.NewTool(ToolCreateUser,
		mcpgo.WithDescription("Create a new user in the database"),
		mcpgo.WithTitleAnnotation("Create User"),
		mcpgo.WithReadOnlyHintAnnotation(false),
		mcpgo.WithDestructiveHintAnnotation(false),
		mcpgo.WithIdempotentHintAnnotation(false),
		mcpgo.WithOpenWorldHintAnnotation(true),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Full name of the user"),
		),
		mcpgo.WithString("email",
			mcpgo.Required(),
			mcpgo.Description("Email address of the user"),
		),
		mcpgo.WithString("address",
			mcpgo.Required(),
			mcpgo.Description("Postal address of the user"),
		),
		mcpgo.WithString("phone",
			mcpgo.Required(),
			mcpgo.Description("Phone number of the user"),
		),
	)
}

func (s *Server) handleCreateUser(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	log := s.log.ToolLogger(ToolCreateUser, uuid.NewString())
	start := time.Now()

	id, err := s.createUser(ctx, req)

	elapsed := time.Since(start)
	s.metrics.RecordToolCall(ToolCreateUser, err, elapsed)
	log.LogToolCall(elapsed, string(policymcp.KindOf(err)), err)

	if err != nil {
		return mcpgo.NewToolResultError(newFailure("save user", err).Error()), nil
	}
	return mcpgo.NewToolResultText(fmt.Sprintf("User created successfully (ID: %d)", id)), nil
}

func (s *Server) createUser(ctx context.Context, req mcpgo.CallToolRequest) (int, error) {
	var u registry.NewUser
	args := []struct {
		key string
		dst *string
	}{
		{"name", &u.Name},
		{"email", &u.Email},
		{"address", &u.Address},
		{"phone", &u.Phone},
	}
	for _, a := range args {
		v, err := req.RequireString(a.key)
		if err != nil {
			return 0, policymcp.InvalidInputError("mcp.create-user", err)
		}
		*a.dst = v
	}

	return s.users.Append(ctx, u)
}
