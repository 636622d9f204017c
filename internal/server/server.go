// Package server streams a generated planet to browsers and tools over HTTP
// and websockets.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/internal/planet"
	"github.com/Faultbox/planetgen/pkg/formats"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves one immutable planet to any number of clients.
type Server struct {
	planet *planet.Planet
	log    *zap.Logger

	plnt  []byte
	mesh  MeshMessage
	stats StatsMessage

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

// New pre-encodes p so handlers only read shared state.
func New(p *planet.Planet, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var buf bytes.Buffer
	if err := formats.WritePLNT(&buf, p.PLNT()); err != nil {
		return nil, fmt.Errorf("encoding PLNT: %w", err)
	}

	return &Server{
		planet: p,
		log:    log,
		plnt:   buf.Bytes(),
		mesh:   newMeshMessage(p),
		stats:  newStatsMessage(p),
		upgrader: websocket.Upgrader{
			// Local tool; any page may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET /mesh.plnt", s.handlePLNT)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes open websockets.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Health{
		Status:   "ok",
		Params:   s.mesh.Params,
		Vertices: len(s.mesh.Vertices),
		Clients:  s.Clients(),
	})
}

func (s *Server) handlePLNT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="planet.plnt"`)
	http.ServeContent(w, r, "planet.plnt", time.Time{}, bytes.NewReader(s.plnt))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	connMu := s.addClient(conn)
	defer s.removeClient(conn)
	log.Debug("client connected", zap.Int("clients", s.Clients()))

	if err := send(conn, connMu, s.mesh); err != nil {
		log.Warn("sending mesh failed", zap.Error(err))
		return
	}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			break
		}

		var reply any
		switch req.Type {
		case TypeStats:
			reply = s.stats
		case TypeMesh:
			reply = s.mesh
		default:
			reply = ErrorMessage{Type: TypeError, Message: fmt.Sprintf("unknown request type %q", req.Type)}
		}
		if err := send(conn, connMu, reply); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			break
		}
	}

	log.Debug("client disconnected")
}

func (s *Server) addClient(conn *websocket.Conn) *sync.Mutex {
	mu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = mu
	s.mu.Unlock()
	return mu
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
}

func (s *Server) closeClients() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn, mu := range s.clients {
		mu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		mu.Unlock()
		conn.Close()
	}
}

// send serializes writes on one connection; gorilla allows a single writer.
func send(conn *websocket.Conn, mu *sync.Mutex, v any) error {
	mu.Lock()
	defer mu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
