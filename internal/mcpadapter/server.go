package mcpadapter

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "portfolio-assistant"
	ServerVersion = "1.0.0"
)

// NewServer registers the portfolio tools on a fresh MCP server.
func NewServer(chat ChatService, searcher Searcher) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_portfolio",
		Description: "Ask about the portfolio owner's career, projects or interview answers. Modes: default (intent routed), rag (grounded with sources), search (documents only), simulation (mock interview).",
	}, NewAskHandler(chat))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Rank the portfolio knowledge documents against a query by keyword relevance. No generation.",
	}, NewSearchHandler(searcher))

	return server
}
