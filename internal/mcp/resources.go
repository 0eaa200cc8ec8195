// ABOUTME: MCP resource implementations for the fitness log.
// ABOUTME: Provides plainfit://today and plainfit://catalog resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "plainfit://today"
	catalogURI = "plainfit://catalog"
)

func (s *Server) registerResources() {
	// plainfit://today - entries logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Workout",
		Description: "All entries logged today, newest first",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// plainfit://catalog - categories and their exercise types
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Exercise Catalog",
		Description: "Categories with the exercise types in each",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.day(s.now())
	if err != nil {
		return nil, err
	}
	return jsonResource(todayURI, out)
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.catalog()
	if err != nil {
		return nil, err
	}
	return jsonResource(catalogURI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
