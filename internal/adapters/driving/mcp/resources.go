package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/documents/docx"
)

const (
	// uriScheme is the custom URI scheme for pew resources.
	uriScheme = "pew://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "feasts",
		Name:        "feasts",
		Description: "Names of all feasts in table order",
		MIMEType:    "application/json",
	}, s.handleFeastsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "feasts/{name}",
		Name:        "feast-propers",
		Description: "The propers of one feast as plain text, laid out like the generated document",
		MIMEType:    "text/plain",
	}, s.handleFeastResource)
}

// handleFeastsResource returns the names of all feasts.
func (s *Server) handleFeastsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	feasts, err := s.ports.Records.Feasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing feasts: %w", err)
	}

	names := make([]string, len(feasts))
	for i := range feasts {
		names[i] = feasts[i].Name
	}

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling feasts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFeastResource returns the propers of one feast.
func (s *Server) handleFeastResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractFeastName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	feast, err := s.ports.Records.Feast(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting feast: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     docx.FeastDocument(feast).Text(),
		}},
	}, nil
}

// extractFeastName extracts the feast name from a URI like pew://feasts/{name}.
// The name may be percent-encoded.
func extractFeastName(uri string) string {
	const prefix = uriScheme + "feasts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return name
}
