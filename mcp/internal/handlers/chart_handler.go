package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/hectorherrerafullstack/astroApi/client"
)

// CacheResetter drops cached horoscopes. *client.HoroscopeCache satisfies it.
type CacheResetter interface {
	Reset()
}

// ChartHandler exposes the compute_natal_chart tool.
type ChartHandler struct {
	computer client.ChartComputer
	store    client.ChartStore
	cache    CacheResetter
}

// NewChartHandler builds the handler. cache may be nil; when set it is reset
// after every stored chart, since cached horoscopes belong to the old one.
func NewChartHandler(c client.ChartComputer, s client.ChartStore, cache CacheResetter) *ChartHandler {
	return &ChartHandler{computer: c, store: s, cache: cache}
}

// RegisterTools registers the compute_natal_chart tool.
func (ch *ChartHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("compute_natal_chart",
		mcp.WithDescription("Compute the natal chart for a birth moment and place, and store it as the chart used by daily_horoscope. Call once per person."),
		mcp.WithString("datetime", mcp.Required(), mcp.Description("Local birth date and time, e.g. 1992-12-07T23:58:00")),
		mcp.WithString("timezone", mcp.Required(), mcp.Description("IANA timezone of the birth place, e.g. America/Tegucigalpa")),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Birth latitude in degrees (-90..90)")),
		mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Birth longitude in degrees (-180..180)")),
		mcp.WithString("house_system", mcp.Description("House system code, default P (Placidus)")),
		mcp.WithBoolean("topocentric_moon_only", mcp.Description("Use topocentric positions for the Moon only")),
	)
	s.AddTool(tool, ch.handleCompute)
	return nil
}

func (ch *ChartHandler) handleCompute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datetime, err := req.RequireString("datetime")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timezone, err := req.RequireString("timezone")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lat, ok := numberArg(req, "latitude")
	if !ok {
		return mcp.NewToolResultError("latitude is required"), nil
	}
	lng, ok := numberArg(req, "longitude")
	if !ok {
		return mcp.NewToolResultError("longitude is required"), nil
	}

	birth := client.BirthData{
		Datetime:            datetime,
		Timezone:            timezone,
		Latitude:            lat,
		Longitude:           lng,
		HouseSystem:         stringArg(req, "house_system", "P"),
		TopocentricMoonOnly: boolArg(req, "topocentric_moon_only"),
	}
	chart, err := client.ComputeAndStore(ctx, ch.computer, ch.store, birth)
	if err != nil {
		log.Error().Err(err).Str("timezone", timezone).Msg("compute_natal_chart failed")
		return failure("natal chart computation", err), nil
	}
	if ch.cache != nil {
		ch.cache.Reset()
	}
	return jsonResult(chart)
}
