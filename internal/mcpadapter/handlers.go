package mcpadapter

import (
	"context"

	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ChatService answers one chat request.
type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*orchestrator.Result, error)
}

// Searcher ranks knowledge documents.
type Searcher interface {
	Search(query string, topK int) []models.RetrievalResult
}

// AskInput is the MCP tool input schema (matches HTTP API field names).
type AskInput struct {
	Message  string                `json:"message" jsonschema:"question about the portfolio owner"`
	Mode     string                `json:"mode,omitempty" jsonschema:"default, rag, search or simulation (default: default)"`
	Language string                `json:"language,omitempty" jsonschema:"ko or en (default: ko)"`
	History  []models.HistoryEntry `json:"history,omitempty" jsonschema:"prior turns, oldest first"`
}

// AskOutput carries the chat envelope, or the search envelope for mode=search.
type AskOutput struct {
	Chat   *models.ChatResponse   `json:"chat,omitempty"`
	Search *models.SearchResponse `json:"search,omitempty"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text query"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of documents (default 3, max 5)"`
}

// NewAskHandler returns a tool handler that uses the given chat service.
// Pass the returned function to mcp.AddTool.
func NewAskHandler(chat ChatService) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
		return AskPortfolio(ctx, chat, req, input)
	}
}

// AskPortfolio runs one chat request through the orchestrator.
func AskPortfolio(
	ctx context.Context,
	chat ChatService,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := chat.Handle(ctx, models.ChatRequest{
		Message:  input.Message,
		History:  input.History,
		Mode:     models.Mode(input.Mode),
		Language: models.Language(input.Language),
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Chat: result.Chat, Search: result.Search}, nil
}

// NewSearchHandler returns a tool handler for lexical document search.
// Pass the returned function to mcp.AddTool.
func NewSearchHandler(searcher Searcher) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, models.SearchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, models.SearchResponse, error) {
		return SearchDocuments(ctx, searcher, req, input)
	}
}

// SearchDocuments ranks documents without any generation call.
func SearchDocuments(
	ctx context.Context,
	searcher Searcher,
	req *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, models.SearchResponse, error) {
	return nil, models.SearchResponse{
		Documents: searcher.Search(input.Query, input.TopK),
		Query:     input.Query,
	}, nil
}
