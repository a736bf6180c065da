package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/dastan/game/engine"
	"github.com/wricardo/dastan/game/service"
)

const (
	serverName    = "Dastan"
	serverVersion = "1.0.0"
)

// Server answers MCP tool calls from the game service
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server with every tool registered
func NewServer(gameService service.GameService) *Server {
	s := &Server{service: gameService}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Dastan - read-only MCP interface

Two players move pieces on a grid using a queue of five move options. Games
are played on the terminal; these tools let you follow them.

AVAILABLE TOOLS:
- list_sessions: list games
- get_session: details of one game
- game_state: board, offer and player to move
- list_configs: available board configurations
- game_instructions: rules of the game
- describe_square: what stands on one square`),
	)

	s.registerTools()
	return s
}

func sessionIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func (s *Server) registerTools() {
	noArgs := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}
	sessionArg := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{"session_id": sessionIDSchema()},
		Required:   []string{"session_id"},
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all game sessions",
		InputSchema: noArgs,
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionArg,
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the latest state of a game: board, offer, scores and queues",
		InputSchema: sessionArg,
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: noArgs,
	}, s.handleListConfigs)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Dastan",
		InputSchema: noArgs,
	}, s.handleGameInstructions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_square",
		Description: "Describe one square: stronghold, piece, owner and the points the piece is worth if captured",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row number, starting at 1",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column number, starting at 1",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, s.handleDescribeSquare)
}

// MCPServer returns the underlying MCP server, e.g. for stdio serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeHTTP handles one JSON-RPC message per POST
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := s.mcpServer.HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Warn().Err(err).Msg("failed to encode mcp response")
	}
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg accepts JSON numbers, which arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Tool handlers

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionList(sessions)), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	session, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(session)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.service.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatConfigs(configs)), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions()), nil
}

func (s *Server) handleDescribeSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if sessionID == "" || !okRow || !okCol {
		return mcp.NewToolResultError("session_id, row and col are required"), nil
	}

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if row < 1 || row > state.Rows || col < 1 || col > state.Cols {
		return mcp.NewToolResultError(fmt.Sprintf("square (%d,%d) is out of bounds; the board has rows 1-%d and columns 1-%d",
			row, col, state.Rows, state.Cols)), nil
	}
	return mcp.NewToolResultText(describeSquare(state, engine.Position{Row: row, Col: col})), nil
}
