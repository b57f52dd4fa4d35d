package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hectorherrerafullstack/astroApi/client"
)

// TransitsHandler exposes the planetary_transits tool.
type TransitsHandler struct {
	lister    client.TransitLister
	defaultTZ string
}

func NewTransitsHandler(l client.TransitLister, defaultTZ string) *TransitsHandler {
	return &TransitsHandler{lister: l, defaultTZ: defaultTZ}
}

// RegisterTools registers the planetary_transits tool.
func (th *TransitsHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("planetary_transits",
		mcp.WithDescription("Planetary positions (longitude, speed, sign, degree in sign) for a date. Does not need a natal chart."),
		mcp.WithString("date", mcp.Description("Date YYYY-MM-DD (default today)")),
		mcp.WithString("timezone", mcp.Description("IANA timezone (default server setting)")),
	)
	s.AddTool(tool, th.handleTransits)
	return nil
}

func (th *TransitsHandler) handleTransits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ts, err := th.lister.GetTransits(ctx, stringArg(req, "date", ""), stringArg(req, "timezone", th.defaultTZ))
	if err != nil {
		return failure("planetary transits", err), nil
	}
	return jsonResult(ts)
}
