// Package mcp exposes the configuration engine as a Model Context Protocol
// server, so agents can drive flows as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

// ConfigureResponse flattens a result envelope into plain JSON types so a
// stable output schema can be derived for the tool.
type ConfigureResponse struct {
	Type        string            `json:"type" jsonschema_description:"Result kind: form, create_entry or abort"`
	FlowID      string            `json:"flow_id" jsonschema_description:"Identifier to pass back on the next call"`
	Title       string            `json:"title,omitempty"`
	StepID      string            `json:"step_id,omitempty" jsonschema_description:"The step to submit next (form results only)"`
	Description string            `json:"description,omitempty"`
	DataSchema  map[string]string `json:"data_schema,omitempty" jsonschema_description:"Expected input fields and their types"`
	Errors      map[string]string `json:"errors,omitempty"`
	TotalSteps  int               `json:"total_steps,omitempty"`
	Data        any               `json:"data,omitempty" jsonschema_description:"Committed entry data (create_entry results only)"`
	Reason      string            `json:"reason,omitempty" jsonschema_description:"Why the flow ended (abort results only)"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Configure(ctx context.Context, domainName, flowID, stepID string, input any) (domain.Result, error)
	Domains() []string
	Entries(domainName string) []domain.ConfigEntry
	AllEntries() []domain.ConfigEntry
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("espalier-mcp", espalier.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: configure
	configureTool := mcp.NewTool("configure",
		mcp.WithDescription("Start or continue a configuration flow. Omit flow_id to start; pass the returned flow_id and step_id with input to submit a form."),
		mcp.WithString("domain", mcp.Required(), mcp.Description("Integration domain to configure")),
		mcp.WithString("flow_id", mcp.Description("Flow identifier from a previous form result (optional)")),
		mcp.WithString("step_id", mcp.Description("Step to submit (optional, defaults to the initial step)")),
		mcp.WithString("input", mcp.Description("JSON object with the form field values (optional)")),
		mcp.WithOutputSchema[ConfigureResponse](),
	)
	s.mcpServer.AddTool(configureTool, mcp.NewStructuredToolHandler(s.handleConfigure))

	// TOOL: list_domains
	s.mcpServer.AddTool(mcp.NewTool("list_domains",
		mcp.WithDescription("List the domains that have committed configuration entries, in first-configured order."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		domains := s.engine.Domains()
		if domains == nil {
			domains = []string{}
		}
		jsonBytes, _ := json.Marshal(domains)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_entries
	s.mcpServer.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List committed configuration entries, optionally filtered by domain."),
		mcp.WithString("domain", mcp.Description("Only return entries for this domain (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		domainName := request.GetString("domain", "")
		var entries []domain.ConfigEntry
		if domainName != "" {
			entries = s.engine.Entries(domainName)
		} else {
			entries = s.engine.AllEntries()
		}
		if entries == nil {
			entries = []domain.ConfigEntry{}
		}
		jsonBytes, _ := json.Marshal(entries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a Mermaid diagram of the committed configuration (domains and their entries)."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.AllEntries())), nil
	})
}

func (s *Server) handleConfigure(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ConfigureResponse, error) {
	domainName, _ := args["domain"].(string)
	flowID, _ := args["flow_id"].(string)
	stepID, _ := args["step_id"].(string)

	var input any
	if inputStr, ok := args["input"].(string); ok && inputStr != "" {
		parsed := make(map[string]any)
		if err := json.Unmarshal([]byte(inputStr), &parsed); err != nil {
			return ConfigureResponse{}, fmt.Errorf("input is not a JSON object: %w", err)
		}
		input = parsed
	}

	result, err := s.engine.Configure(ctx, domainName, flowID, stepID, input)
	if err != nil {
		return ConfigureResponse{}, fmt.Errorf("configure failed: %w", err)
	}

	return flattenResult(result), nil
}

func flattenResult(result domain.Result) ConfigureResponse {
	resp := ConfigureResponse{
		Type:        string(result.Type),
		FlowID:      result.FlowID,
		Title:       result.Title,
		StepID:      result.StepID,
		Description: result.Description,
		Errors:      result.Errors,
		TotalSteps:  result.TotalSteps,
		Data:        result.Data,
		Reason:      result.Reason,
	}
	if len(result.DataSchema) > 0 {
		resp.DataSchema = make(map[string]string, len(result.DataSchema))
		for field, typ := range result.DataSchema {
			resp.DataSchema[field] = typ.Name()
		}
	}
	return resp
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://entries
	s.mcpServer.AddResource(mcp.NewResource("espalier://entries", "Committed Configuration Entries",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries := s.engine.AllEntries()
		if entries == nil {
			entries = []domain.ConfigEntry{}
		}
		jsonBytes, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal entries: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://entries",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
