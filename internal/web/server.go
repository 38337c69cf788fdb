package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/game"
)

//go:embed static
var staticFiles embed.FS

const writeTimeout = 5 * time.Second

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Title  string `json:"title"`
	Kind   string `json:"kind"`
	Points int    `json:"points,omitempty"`
	Effect string `json:"effect,omitempty"`
	Text   string `json:"text,omitempty"`
	Amount int    `json:"amount"`
}

// Server is the spectator web server.
type Server struct {
	catalog *game.Catalog
	hub     *Hub
	diag    logrus.FieldLogger
	mux     *http.ServeMux
}

// NewServer creates a server showing catalog and streaming hub's events.
func NewServer(catalog *game.Catalog, hub *Hub, diag logrus.FieldLogger) *Server {
	if diag == nil {
		diag = logrus.StandardLogger()
	}
	s := &Server{
		catalog: catalog,
		hub:     hub,
		diag:    diag,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.diag, s.mux)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, len(s.catalog.Cards))
	for _, c := range s.catalog.Cards {
		ci := CardInfo{
			Title:  c.Title,
			Kind:   c.Kind.String(),
			Text:   c.Text,
			Amount: c.Amount,
		}
		if c.Kind == game.CardKindPoint {
			ci.Points = c.Points
		}
		if c.Effect != game.EffectNone {
			ci.Effect = c.Effect.String()
		}
		cards = append(cards, ci)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.diag.WithError(err).Warn("WebSocket accept error")
		return
	}
	defer conn.CloseNow()

	log := s.diag.WithField("remote", r.RemoteAddr)
	log.Info("WebSocket connected")

	c, backlog := s.hub.register()
	defer s.hub.unregister(c)

	// Spectators only listen; CloseRead handles their control frames.
	ctx := conn.CloseRead(r.Context())

	for _, data := range backlog {
		if err := write(ctx, conn, data); err != nil {
			log.WithError(err).Info("WebSocket disconnected")
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			log.Info("WebSocket disconnected")
			return
		case data, ok := <-c.send:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "too slow")
				return
			}
			if err := write(ctx, conn, data); err != nil {
				log.WithError(err).Info("WebSocket disconnected")
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

// logRequests logs the method, path, and duration of each request.
func logRequests(logger logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
			"remote":   r.RemoteAddr,
		}).Info("HTTP Request")
	})
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}
