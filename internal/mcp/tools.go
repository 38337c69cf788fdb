package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/hldx/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// baseConfig is the game configuration every session starts from, set by main.
var baseConfig game.GameConfig

// Configure sets the catalog, rules and diagnostics used for new games.
func Configure(cfg game.GameConfig) {
	baseConfig = cfg
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(chooseOptionTool(), handleChooseOption)
	s.AddTool(answerYesNoTool(), handleAnswerYesNo)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Happy Little Dinosaurs game. You decide for every player: each pending "+
			"decision names the player it is for and shows the state from that player's seat. "+
			"Returns the initial events and the first pending decision."),
		mcp.WithString("players", mcp.Required(), mcp.Description("Comma-separated player names, 2 to 4 (e.g. 'Ann,Ben,Cat')")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible game (0 or omitted = random)")),
	)
}

func chooseOptionTool() mcp.Tool {
	return mcp.NewTool("choose_option",
		mcp.WithDescription("Choose one of the pending options. Use this when the pending decision type is 'choose_option'. "+
			"An option the rules do not allow is asked again."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the options list")),
	)
}

func answerYesNoTool() mcp.Tool {
	return mcp.NewTool("answer_yes_no",
		mcp.WithDescription("Answer a yes/no question. Use this when the pending decision type is 'answer_yes_no'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	var names []string
	for _, n := range strings.Split(request.GetString("players", ""), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	cfg := baseConfig
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Seed = int64(seed)
	}

	sess, err := NewGameSession(cfg, names)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if resp.GameOver {
		endSession()
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleChooseOption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOf(DecisionChooseOption)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Options) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Options)-1), nil
	}

	return respond(ctx, sess, OptionResponse{Index: index})
}

func handleAnswerYesNo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, _, errResult := pendingOf(DecisionAnswerYesNo)
	if errResult != nil {
		return errResult, nil
	}

	answer := request.GetBool("answer", false)

	return respond(ctx, sess, YesNoResponse{Answer: answer})
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	// Pick up a decision that arrived after an interrupted wait.
	if sess.currentPending == nil {
		select {
		case p := <-sess.pendingCh:
			sess.currentPending = p
		default:
		}
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

// pendingOf returns the active session and its pending decision if that
// decision is of type want, or a tool error result explaining why not.
func pendingOf(want DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil || pending.Type == DecisionGameOver {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, pending, nil
}

// respond hands an answer to the engine and waits for its next decision.
func respond(ctx context.Context, sess *GameSession, answer any) (*mcp.CallToolResult, error) {
	sess.currentPending = nil
	sess.ctrl.responseCh <- answer

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		endSession()
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func endSession() {
	if activeSession != nil {
		activeSession.Close()
		activeSession = nil
	}
}
