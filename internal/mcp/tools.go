package mcp

import "github.com/mark3labs/mcp-go/mcp"

// findSimilarTool defines the find_similar_issues MCP tool.
var findSimilarTool = mcp.NewTool("find_similar_issues",
	mcp.WithDescription("Find open civic complaints that likely describe the same real-world issue as a new report. Candidates must share the report's category and postal code; results are ranked by semantic similarity."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Short title of the new complaint"),
	),
	mcp.WithString("description",
		mcp.Required(),
		mcp.Description("Free-text description of the complaint"),
	),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Complaint category, e.g. \"road maintenance\""),
	),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("Address of the issue; must contain a 6-digit postal code"),
	),
)

// corpusStatsTool defines the corpus_stats MCP tool.
var corpusStatsTool = mcp.NewTool("corpus_stats",
	mcp.WithDescription("Describe the loaded corpus of open issues: size, embedding model, and load time."),
)
