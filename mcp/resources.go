package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/lvillar/policymcp"
)

// Company policy resource descriptor.
const (
	PolicyURI         = "resource://docs/company-policy"
	PolicyTitle       = "Company Policy and Procedures"
	PolicyDescription = "A PDF document containing company policy guidelines"
	PolicyMIMEType    = "text/plain"
)

func policyResource() mcpgo.Resource {
	return mcpgo.NewResource(PolicyURI, PolicyTitle,
		mcpgo.WithResourceDescription(PolicyDescription),
		mcpgo.WithMIMEType(PolicyMIMEType),
	)
}

func (s *Server) handlePolicy(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
	log := s.log.ResourceLogger(PolicyURI, uuid.NewString())
	start := time.Now()

	text, err := s.policy.Read(ctx)

	elapsed := time.Since(start)
	s.metrics.RecordResourceRead(PolicyURI, err, elapsed)
	log.LogResourceRead(elapsed, len(text), string(policymcp.KindOf(err)), err)

	if err != nil {
		return nil, newFailure("read company policy", err)
	}
	s.metrics.SetDocumentTextBytes(len(text))

	uri := req.Params.URI
	if uri == "" {
		uri = PolicyURI
	}
	return []mcpgo.ResourceContents{
		mcpgo.TextResourceContents{
			URI:      uri,
			MIMEType: PolicyMIMEType,
			Text:     text,
		},
	}, nil
}
