package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hectorherrerafullstack/astroApi/client"
	"github.com/hectorherrerafullstack/astroApi/client/format"
)

// HoroscopeCache is the cache surface the horoscope tools need.
// *client.HoroscopeCache satisfies it.
type HoroscopeCache interface {
	client.HoroscopeFetcher
	ClearOldCache() int
}

// HoroscopeHandler exposes daily_horoscope and clear_horoscope_cache.
type HoroscopeHandler struct {
	cache     HoroscopeCache
	store     client.ChartStore
	defaultTZ string
}

func NewHoroscopeHandler(cache HoroscopeCache, s client.ChartStore, defaultTZ string) *HoroscopeHandler {
	return &HoroscopeHandler{cache: cache, store: s, defaultTZ: defaultTZ}
}

// RegisterTools registers the horoscope tools.
func (hh *HoroscopeHandler) RegisterTools(s *server.MCPServer) error {
	daily := mcp.NewTool("daily_horoscope",
		mcp.WithDescription("Daily horoscope for the stored natal chart: ascendant, top aspects, activated houses and interpretation. Requires compute_natal_chart to have run once. Answers are cached for a few hours per date and timezone."),
		mcp.WithString("date", mcp.Description("Target date YYYY-MM-DD (default today)")),
		mcp.WithString("timezone", mcp.Description("IANA timezone (default server setting)")),
		mcp.WithString("format", mcp.Description("json (default) or html")),
	)
	s.AddTool(daily, hh.handleDaily)

	purge := mcp.NewTool("clear_horoscope_cache",
		mcp.WithDescription("Drop cached horoscopes older than the retention window. Returns how many were removed."),
	)
	s.AddTool(purge, hh.handleClear)
	return nil
}

func (hh *HoroscopeHandler) handleDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := stringArg(req, "date", "")
	tz := stringArg(req, "timezone", hh.defaultTZ)
	out := stringArg(req, "format", "json")
	if out != "json" && out != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use json or html", out)), nil
	}

	h, err := client.QuickHoroscope(ctx, hh.cache, hh.store, date, tz)
	if err != nil {
		return failure("daily horoscope", err), nil
	}
	if out == "html" {
		page, err := format.ToHTML(h)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(page), nil
	}
	return jsonResult(h)
}

func (hh *HoroscopeHandler) handleClear(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]int{"removed": hh.cache.ClearOldCache()})
}
