// Package mcp exposes the service directory to assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/directory"
)

// DirectoryReader lists and fetches directory services.
type DirectoryReader interface {
	List(ctx context.Context, filter service.DirectoryFilter) ([]directory.Service, error)
	ByID(ctx context.Context, id string) (directory.Service, error)
}

// ServiceMatcher ranks services against a free-text need.
type ServiceMatcher interface {
	ServiceMatch(ctx context.Context, query string, limit int) (service.MatchResult, error)
}

// Server wraps the MCP server with the portal's directory tools.
type Server struct {
	mcpServer *server.MCPServer
	directory DirectoryReader
	matcher   ServiceMatcher
	logger    *slog.Logger
}

// NewServer creates a new MCP server. matcher may be nil, in which case
// match_services is not registered.
func NewServer(dir DirectoryReader, matcher ServiceMatcher, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		directory: dir,
		matcher:   matcher,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"bizportal",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Tools for the chamber of commerce service directory. Service names and descriptions are returned in English and Arabic."),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("search_services",
		mcp.WithDescription("Search the chamber service directory by keyword in English or Arabic"),
		mcp.WithString("query",
			mcp.Description("Words to look for in service names, descriptions and tags"),
		),
		mcp.WithString("department",
			mcp.Description("Only services of this department"),
		),
		mcp.WithString("channel",
			mcp.Description("Delivery channel"),
			mcp.Enum(string(directory.ChannelOnline), string(directory.ChannelInPerson), string(directory.ChannelHybrid)),
		),
		mcp.WithBoolean("featured",
			mcp.Description("Only featured services"),
		),
	), s.handleSearch)

	mcpServer.AddTool(mcp.NewTool("get_service",
		mcp.WithDescription("Get one directory service by its id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The service id, for example esg-label"),
		),
	), s.handleGetService)

	if s.matcher != nil {
		mcpServer.AddTool(mcp.NewTool("match_services",
			mcp.WithDescription("Rank directory services against a business need described in free text"),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("What the business is trying to do"),
			),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Number of services to return (default: %d, max: %d)", service.DefaultMatchLimit, service.MaxMatchLimit)),
			),
		), s.handleMatch)
	}
}

type serviceResult struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	NameAr        string   `json:"nameAr"`
	Description   string   `json:"description"`
	DescriptionAr string   `json:"descriptionAr"`
	Department    string   `json:"department"`
	Channel       string   `json:"channel"`
	URL           string   `json:"url,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Score         float64  `json:"score,omitempty"`
}

func toResult(svc directory.Service) serviceResult {
	return serviceResult{
		ID:            svc.ID(),
		Name:          svc.Name().En,
		NameAr:        svc.Name().Ar,
		Description:   svc.Description().En,
		DescriptionAr: svc.Description().Ar,
		Department:    svc.Department(),
		Channel:       string(svc.Channel()),
		URL:           svc.URL(),
		Tags:          svc.Tags(),
	}
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := service.DirectoryFilter{
		Query:        request.GetString("query", ""),
		Department:   request.GetString("department", ""),
		FeaturedOnly: request.GetBool("featured", false),
	}
	if raw := request.GetString("channel", ""); raw != "" {
		channel, ok := directory.ParseChannelType(raw)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown channel: %s", raw)), nil
		}
		filter.Channel = channel
	}

	services, err := s.directory.List(ctx, filter)
	if err != nil {
		s.logger.Error("service search failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]serviceResult, len(services))
	for i, svc := range services {
		results[i] = toResult(svc)
	}
	return jsonResult(results)
}

func (s *Server) handleGetService(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	svc, err := s.directory.ByID(ctx, id)
	if err != nil {
		s.logger.Warn("failed to get service", slog.String("id", id), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to get service: %v", err)), nil
	}
	return jsonResult(toResult(svc))
}

func (s *Server) handleMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}

	result, err := s.matcher.ServiceMatch(ctx, query, request.GetInt("limit", service.DefaultMatchLimit))
	if err != nil {
		s.logger.Error("service match failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("match failed: %v", err)), nil
	}

	type matchResult struct {
		Strategy string          `json:"strategy"`
		Matches  []serviceResult `json:"matches"`
	}
	out := matchResult{
		Strategy: string(result.Strategy),
		Matches:  make([]serviceResult, len(result.Matches)),
	}
	for i, m := range result.Matches {
		out.Matches[i] = toResult(m.Service)
		out.Matches[i].Score = m.Score
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
