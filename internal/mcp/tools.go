package mcp

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/host"
)

// Tools serves the sandbox over MCP. One session is active per process.
type Tools struct {
	Cards       string // card library YAML
	Scenario    string // default scenario YAML
	Player      int    // default seat for the agent
	Diagnostics *zap.Logger

	mu      sync.Mutex
	session *GameSession
}

// RegisterTools adds all sandbox tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(loadScenarioTool(), t.handleLoadScenario)
	s.AddTool(emitEventTool(), t.handleEmitEvent)
	s.AddTool(answerYesNoTool(), t.handleAnswerYesNo)
	s.AddTool(selectCardsTool(), t.handleSelectCards)
	s.AddTool(getBoardTool(), t.handleGetBoard)
}

// --- Tool definitions ---

func loadScenarioTool() mcp.Tool {
	return mcp.NewTool("load_scenario",
		mcp.WithDescription("Load a board from a scenario file, replacing the current one. Returns the initial board."),
		mcp.WithString("scenario", mcp.Description("Path to a scenario YAML file. Defaults to the server's scenario.")),
		mcp.WithNumber("player", mcp.Description("Which seat you control: 0 or 1.")),
	)
}

func emitEventTool() mcp.Tool {
	return mcp.NewTool("emit_event",
		mcp.WithDescription("Perform a move and resolve every trigger it causes. Returns at the first prompt for you, "+
			"or with the collected triggers and their outcomes once the move completes. "+
			"Moves: 'summon ID [method]', 'set ID', 'attack ID [TARGET]', 'battle ATTACKER DESTROYED', "+
			"'mutual A B', 'destroy ID [SOURCE]', 'send ID', 'target ID SOURCE', 'standby', 'next_turn', "+
			"'fire EVENT [ID] [ID]' (announce an event about cards where they lie)."),
		mcp.WithString("move", mcp.Required(), mcp.Description("The move, e.g. 'summon 3' or 'battle 4 9'")),
	)
}

func answerYesNoTool() mcp.Tool {
	return mcp.NewTool("answer_yes_no",
		mcp.WithDescription("Answer a yes/no prompt. Use this when the pending decision type is 'choose_yes_no'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select targets from the pending candidates list. Use this when the pending decision type is 'choose_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices of cards to select (e.g. '0 2'), or empty string for no selection")),
	)
}

func getBoardTool() mcp.Tool {
	return mcp.NewTool("get_board",
		mcp.WithDescription("Get the current board, accumulated events and pending decision without answering it. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) active() *GameSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

func noSession() *mcp.CallToolResult {
	return mcp.NewToolResultError("No board is loaded. Use load_scenario first.")
}

func (t *Tools) handleLoadScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenario := request.GetString("scenario", t.Scenario)
	player := request.GetInt("player", t.Player)

	sess, err := NewGameSession(t.Cards, scenario, player, t.Diagnostics)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load scenario: %v", err), nil
	}

	t.mu.Lock()
	if t.session != nil {
		t.session.Close()
	}
	t.session = sess
	t.mu.Unlock()

	return mcp.NewToolResultText(respondJSON(sess.Board())), nil
}

func (t *Tools) handleEmitEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.active()
	if sess == nil {
		return noSession(), nil
	}
	move, err := host.ParseMove(request.GetString("move", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid move: %v", err), nil
	}
	resp, err := sess.Emit(ctx, move)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot emit: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleAnswerYesNo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.active()
	if sess == nil {
		return noSession(), nil
	}
	resp, err := sess.Answer(ctx, request.GetBool("answer", false))
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot answer: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.active()
	if sess == nil {
		return noSession(), nil
	}

	var indices []int
	for _, p := range strings.Fields(request.GetString("indices", "")) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
		}
		indices = append(indices, idx)
	}

	resp, err := sess.Select(ctx, indices)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot select: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.active()
	if sess == nil {
		return noSession(), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Board())), nil
}
