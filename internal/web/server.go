package web

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	tcgxnet "github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          int      `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Subtype     string   `json:"subtype,omitempty"`
	Type        string   `json:"type,omitempty"`
	Level       int      `json:"level,omitempty"`
	ATK         int      `json:"atk,omitempty"`
	DEF         int      `json:"def,omitempty"`
	Effects     []string `json:"effects,omitempty"`
}

// Server serves the card library, the scenario list and browser sessions.
type Server struct {
	cardsFile   string
	scenarioDir string
	player      int
	diag        *zap.Logger
	mux         *http.ServeMux
}

// NewServer creates a new web server. player is the seat browser clients take.
func NewServer(cardsFile, scenarioDir string, player int, diag *zap.Logger) *Server {
	if diag == nil {
		diag = zap.NewNop()
	}
	s := &Server{
		cardsFile:   cardsFile,
		scenarioDir: scenarioDir,
		player:      player,
		diag:        diag,
		mux:         http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/scenarios", s.handleScenarios)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	lib, err := game.LoadLibrary(s.cardsFile)
	if err != nil {
		s.diag.Error("load cards", zap.Error(err))
		http.Error(w, "could not read cards file", http.StatusInternalServerError)
		return
	}
	cards := []CardInfo{}
	for _, c := range lib.Cards() {
		ci := CardInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Kind:        c.Kind.String(),
		}
		switch c.Kind {
		case game.CardKindMonster:
			ci.Type = c.Type
			ci.Level = c.Level
			ci.ATK = c.ATK
			ci.DEF = c.DEF
		default:
			ci.Subtype = c.Sub.String()
		}
		for _, eff := range c.Effects {
			ci.Effects = append(ci.Effects, eff.ID)
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := listScenarios(s.scenarioDir)
	if err != nil {
		s.diag.Error("list scenarios", zap.Error(err))
		http.Error(w, "could not read scenarios", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// handleWebSocket runs a sandbox session for /ws?scenario=NAME. The socket
// carries the same JSON messages as the TCP protocol, one per text frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	path, err := scenarioPath(s.scenarioDir, r.URL.Query().Get("scenario"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	gs, err := tcgxnet.NewBoard(s.cardsFile, path)
	if err != nil {
		s.diag.Error("build board", zap.String("scenario", path), zap.Error(err))
		http.Error(w, "could not build board", http.StatusInternalServerError)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.diag.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	diag := s.diag.With(zap.String("remote", r.RemoteAddr), zap.String("scenario", path))
	diag.Info("browser connected")

	if err := tcgxnet.NewSession(conn, gs, s.player, diag).Run(ctx); err != nil {
		diag.Warn("session ended", zap.Error(err))
		wsConn.Close(websocket.StatusInternalError, "session error")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "session ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.diag.Info("web server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}
