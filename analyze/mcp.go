package analyze

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domscan/kit"
)

// RegisterMCP registers the analysis tool on an MCP server.
func (a *Analyzer) RegisterMCP(srv *mcp.Server) {
	a.registerAnalyzeTool(srv)
}

type analyzeReq struct {
	Markup string `json:"markup"`
	Entity string `json:"entity,omitempty"`
}

func (a *Analyzer) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domscan_analyze",
		Description: "Analyze rendered HTML markup: heading tree, content regions, entity prominence, structured data, DOM metrics.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"markup": map[string]any{"type": "string", "description": "Rendered HTML markup to analyze"},
				"entity": map[string]any{"type": "string", "description": "Optional target entity to score"},
			},
			"required": []string{"markup"},
		},
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*analyzeReq)
		return a.Analyze(r.Markup, r.Entity)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r analyzeReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
