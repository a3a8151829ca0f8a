package api

import (
	"github.com/hazyhaar/zemailer/pkg/kit"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the four zemailer MCP tools on the server.
func (s *Service) RegisterMCPTools(srv *server.MCPServer) {
	s.registerClassify(srv)
	s.registerGenerate(srv)
	s.registerExpand(srv)
	s.registerListPresets(srv)
}

func (s *Service) registerClassify(srv *server.MCPServer) {
	tool := mcp.NewTool("classify_template",
		mcp.WithDescription("Classify an address template (nom.prenom, pnom, nprenom, family.given) into its shape, separator and slot order."),
		mcp.WithString("template", mcp.Required(), mcp.Description("The template to classify")),
	)
	kit.RegisterMCPTool(srv, tool, s.classify, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: &classifyReq{Template: req.GetString("template", "")}}, nil
	})
}

func (s *Service) registerGenerate(srv *server.MCPServer) {
	tool := mcp.NewTool("generate_addresses",
		mcp.WithDescription("Generate institutional email addresses for full names using templates or a known institution preset."),
		mcp.WithString("names", mcp.Required(), mcp.Description("Comma-separated full names (e.g. Eugénie Bouchard, Aurélie Konaté)")),
		mcp.WithString("templates", mcp.Description("Comma-separated templates (e.g. prenom.nom,pnom)")),
		mcp.WithString("preset", mcp.Description("Institution preset id (e.g. edhec, hec); see list_presets")),
		mcp.WithString("domain", mcp.Description("Domain appended after @ (overrides the preset domain)")),
		mcp.WithBoolean("merge_at_front", mcp.Description("For three-word names, merge the first two words into the given name")),
	)
	kit.RegisterMCPTool(srv, tool, s.generate, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		r := &generateReq{
			Names:     pattern.SplitList(req.GetString("names", "")),
			Templates: pattern.SplitList(req.GetString("templates", "")),
			Preset:    req.GetString("preset", ""),
			Domain:    req.GetString("domain", ""),
		}
		if _, ok := req.GetArguments()["merge_at_front"]; ok {
			v := req.GetBool("merge_at_front", s.opts.MergeAtFront)
			r.MergeAtFront = &v
		}
		return &kit.MCPDecodeResult{Request: r}, nil
	})
}

func (s *Service) registerExpand(srv *server.MCPServer) {
	tool := mcp.NewTool("expand_names",
		mcp.WithDescription("Expand full names into every given<separator>family@domain combination, without a template."),
		mcp.WithString("names", mcp.Required(), mcp.Description("Comma-separated full names")),
		mcp.WithString("separators", mcp.Description("Separator characters, e.g. \".-_\" (default . - _)")),
		mcp.WithString("domains", mcp.Description("Comma-separated domains (default gmail,outlook)")),
	)
	kit.RegisterMCPTool(srv, tool, s.expand, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		r := &expandReq{Names: pattern.SplitList(req.GetString("names", ""))}
		if v := req.GetString("separators", ""); v != "" {
			for _, c := range v {
				r.Separators = append(r.Separators, string(c))
			}
		}
		if v := req.GetString("domains", ""); v != "" {
			r.Domains = pattern.SplitList(v)
		}
		return &kit.MCPDecodeResult{Request: r}, nil
	})
}

func (s *Service) registerListPresets(srv *server.MCPServer) {
	tool := mcp.NewTool("list_presets",
		mcp.WithDescription("List the known institutions with their address templates and domains."),
	)
	kit.RegisterMCPTool(srv, tool, s.list, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
