// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Ansuz content graph for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/postservice"
	"github.com/starford/ansuz/internal/query"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp *server.MCPServer
	svc *postservice.Service
}

// New creates a new MCP server with all Ansuz tools registered.
func New(svc *postservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Fuzzy search through post titles, summaries, and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read a post by slug: metadata, markdown body, and connections."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. my-first-post)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List published posts, newest first, optionally filtered."),
		mcp.WithString("category", mcp.Description("Optional category filter")),
		mcp.WithString("tag", mcp.Description("Optional tag filter")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("get_connections",
		mcp.WithDescription("Cross-references of a post: outgoing link targets and the posts that reference it."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug")),
	), s.getConnections)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags in first-seen order, optionally scoped to a category."),
		mcp.WithString("category", mcp.Description("Optional category scope")),
	), s.listTags)

	// Resource: post format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://post-format", "Post Format Contract",
			mcp.WithResourceDescription("Canonical markdown post format served by Ansuz."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items, _ := s.svc.ListPosts(ctx, postservice.ListQuery{Query: q, Order: query.OrderDesc})
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GetPost(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lq := postservice.ListQuery{Order: query.OrderDesc}
	if c, err := req.RequireString("category"); err == nil {
		lq.Category = c
	}
	if t, err := req.RequireString("tag"); err == nil && t != "" {
		lq.Tags = []string{t}
	}
	items, _ := s.svc.ListPosts(ctx, lq)
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", it.Slug, it.Date.Format("2006-01-02"), it.Title))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no posts"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getConnections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conns, err := s.svc.Connections(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	out, _ := json.MarshalIndent(conns, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}
	tags := s.svc.Tags(category)
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags"), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) readPostFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://post-format",
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
