package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hectorherrerafullstack/astroApi/client"
)

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// failure turns err into a tool error that tells the model whether
// retrying with different input can help.
func failure(action string, err error) *mcp.CallToolResult {
	switch {
	case client.IsClientError(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s rejected by the astrology service (check the arguments): %v", action, err))
	case client.IsServiceError(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: astrology service unavailable: %v", action, err))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", action, err))
	}
}

func stringArg(req mcp.CallToolRequest, name, def string) string {
	if v, ok := req.GetArguments()[name].(string); ok && v != "" {
		return v
	}
	return def
}

func numberArg(req mcp.CallToolRequest, name string) (float64, bool) {
	v, ok := req.GetArguments()[name].(float64)
	return v, ok
}

func boolArg(req mcp.CallToolRequest, name string) bool {
	v, _ := req.GetArguments()[name].(bool)
	return v
}
