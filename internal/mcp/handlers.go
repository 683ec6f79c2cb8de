package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/matcher"
	"github.com/civicradar/issueradar/internal/normalize"
)

func (s *Server) handleFindSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: title"), nil
	}
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: description"), nil
	}
	category, err := request.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: category"), nil
	}
	address, err := request.RequireString("address")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: address"), nil
	}

	snap := s.manager.Current()
	if snap == nil {
		return mcp.NewToolResultError("corpus not loaded yet"), nil
	}

	query := issue.Query{
		Title:       title,
		Description: issue.DescriptionFromRaw(description),
		Category:    category,
		Address:     address,
	}

	result, err := s.matcher.FindSimilar(ctx, snap, query)
	if err != nil {
		if matcher.IsClientError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if result.NoCandidates {
		return mcp.NewToolResultText("No similar issues found in same category and pincode. This looks like a new issue."), nil
	}

	return mcp.NewToolResultText(formatMatches(result.Matches)), nil
}

func (s *Server) handleCorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.manager.Current()
	if snap == nil {
		return mcp.NewToolResultError("corpus not loaded yet"), nil
	}

	text := fmt.Sprintf("Corpus: %d open issues, embedded with %s, loaded at %s.",
		snap.Len(), snap.Model, snap.LoadedAt.Format("2006-01-02 15:04:05 MST"))
	return mcp.NewToolResultText(text), nil
}

func formatMatches(matches []issue.Match) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d likely duplicate(s):\n\n", len(matches)))

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("--- Match %d (similarity: %.4f) ---\n", i+1, m.SimilarityScore))
		sb.WriteString(fmt.Sprintf("Issue: %s (%s)\n", m.Title, m.IssueID))
		sb.WriteString(fmt.Sprintf("Category: %s\n", m.Category))
		sb.WriteString(fmt.Sprintf("Address: %s\n", m.Address))
		sb.WriteString(fmt.Sprintf("Status: %s, upvotes: %d\n", m.Status, m.Upvotes))
		if desc := normalize.FlattenDescription(m.Description); desc != "" {
			sb.WriteString(desc)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
