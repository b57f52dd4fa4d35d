package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hectorherrerafullstack/astroApi/mcp"
)

func main() {
	if err := mcp.RunMCPServer(); err != nil {
		log.Error().Err(err).Msg("MCP server exited with error")
		os.Exit(1)
	}
}
