package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/format"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// ListFeastsInput is the input schema for the list_feasts tool.
type ListFeastsInput struct{}

// ListFeastsOutput is the output schema for the list_feasts tool.
type ListFeastsOutput struct {
	Feasts []string `json:"feasts"`
	Count  int      `json:"count"`
}

// GetFeastInput is the input schema for the get_feast tool.
type GetFeastInput struct {
	Name string `json:"name" jsonschema:"the exact feast name, e.g. Christmas Day"`
}

// FeastOutput carries every proper of a feast.
type FeastOutput struct {
	Name       string `json:"name"`
	Introit    string `json:"introit,omitempty"`
	Collect    string `json:"collect,omitempty"`
	EpistleRef string `json:"epistle_ref,omitempty"`
	Epistle    string `json:"epistle,omitempty"`
	Gat        string `json:"gat,omitempty"`
	Gradual    string `json:"gradual,omitempty"`
	Alleluia   string `json:"alleluia,omitempty"`
	Tract      string `json:"tract,omitempty"`
	GospelRef  string `json:"gospel_ref,omitempty"`
	Gospel     string `json:"gospel,omitempty"`
	Offertory  string `json:"offertory,omitempty"`
	Communion  string `json:"communion,omitempty"`
}

// ServiceInput is the input schema for the service_subtitle tool.
type ServiceInput struct {
	Feast     string `json:"feast" jsonschema:"the primary feast name"`
	Secondary string `json:"secondary,omitempty" jsonschema:"a feast commemorated alongside the primary one"`
	Date      string `json:"date,omitempty" jsonschema:"service date as YYYY-MM-DD"`
	Celebrant string `json:"celebrant,omitempty" jsonschema:"the celebrant"`
	Preacher  string `json:"preacher,omitempty" jsonschema:"the preacher, if different from the celebrant"`
	Title     string `json:"title,omitempty" jsonschema:"service title (defaults to the feast name)"`
}

// ServiceOutput is the output schema for the service_subtitle tool.
type ServiceOutput struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Summary  string   `json:"summary"`
	Date     string   `json:"date,omitempty"`
	Collects []string `json:"collects"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_feasts",
		Description: "List the names of all feasts in table order",
	}, s.handleListFeasts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_feast",
		Description: "Get the propers (introit, collect, readings, chants) of a feast by exact name",
	}, s.handleGetFeast)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "service_subtitle",
		Description: "Compose the subtitle, summary and collects of a service sheet",
	}, s.handleServiceSubtitle)
}

// handleListFeasts handles the list_feasts tool invocation.
func (s *Server) handleListFeasts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListFeastsInput,
) (*mcp.CallToolResult, ListFeastsOutput, error) {
	feasts, err := s.ports.Records.Feasts(ctx)
	if err != nil {
		return nil, ListFeastsOutput{}, err
	}

	output := ListFeastsOutput{
		Feasts: make([]string, len(feasts)),
		Count:  len(feasts),
	}
	for i := range feasts {
		output.Feasts[i] = feasts[i].Name
	}
	return nil, output, nil
}

// handleGetFeast handles the get_feast tool invocation.
func (s *Server) handleGetFeast(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetFeastInput,
) (*mcp.CallToolResult, FeastOutput, error) {
	feast, err := s.ports.Records.Feast(ctx, input.Name)
	if err != nil {
		return nil, FeastOutput{}, err
	}
	return nil, feastOutput(feast), nil
}

// handleServiceSubtitle handles the service_subtitle tool invocation.
func (s *Server) handleServiceSubtitle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ServiceInput,
) (*mcp.CallToolResult, ServiceOutput, error) {
	if s.ports.Builder == nil {
		return nil, ServiceOutput{}, ErrBuilderUnavailable
	}

	req := driving.ServiceRequest{
		Title:          strings.TrimSpace(input.Title),
		Celebrant:      strings.TrimSpace(input.Celebrant),
		Preacher:       strings.TrimSpace(input.Preacher),
		PrimaryFeast:   input.Feast,
		SecondaryFeast: input.Secondary,
	}
	if input.Date != "" {
		date, err := time.Parse(time.DateOnly, input.Date)
		if err != nil {
			return nil, ServiceOutput{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", input.Date, domain.ErrInvalidInput)
		}
		req.Date = date
	}

	svc, err := s.ports.Builder.Build(ctx, req)
	if err != nil {
		return nil, ServiceOutput{}, err
	}

	return nil, ServiceOutput{
		Title:    svc.Title,
		Subtitle: format.ServiceSubtitle(svc),
		Summary:  format.ServiceSummary(svc),
		Date:     format.EnglishDate(svc.Date),
		Collects: svc.Collects(),
	}, nil
}

func feastOutput(f *domain.Feast) FeastOutput {
	return FeastOutput{
		Name:       f.Name,
		Introit:    f.Introit,
		Collect:    f.Collect,
		EpistleRef: f.EpistleRef,
		Epistle:    f.Epistle,
		Gat:        f.Gat,
		Gradual:    f.Gradual,
		Alleluia:   f.Alleluia,
		Tract:      f.Tract,
		GospelRef:  f.GospelRef,
		Gospel:     f.Gospel,
		Offertory:  f.Offertory,
		Communion:  f.Communion,
	}
}
