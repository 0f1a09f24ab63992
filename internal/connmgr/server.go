// Package connmgr is the connection manager of spec.md §4.6: the TCP
// accept loop, one worker goroutine per client, delivery of a router.Plan
// across reply/targeted/broadcast modes, and the heartbeat supervisor that
// ages out silent players and grace-expired disconnects.
package connmgr

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardroom/internal/config"
	"cardroom/internal/logging"
	"cardroom/internal/players"
	"cardroom/internal/rooms"
	"cardroom/internal/router"
	"cardroom/internal/wire"
)

// Server owns the listener, the live per-connection writers, and the
// background supervisor. It has no game-domain knowledge of its own — that
// lives in router.Router and the registries it was built with.
type Server struct {
	cfg     config.Config
	players *players.Registry
	rooms   *rooms.Registry
	router  *router.Router

	listener net.Listener

	mu      sync.Mutex
	writers map[net.Conn]*connWriter

	quit chan struct{}
	wg   sync.WaitGroup
}

// New wires a connection manager over an already-constructed router and
// registries (built by cmd/server at startup).
func New(cfg config.Config, playerRegistry *players.Registry, roomRegistry *rooms.Registry, rt *router.Router) *Server {
	return &Server{
		cfg:     cfg,
		players: playerRegistry,
		rooms:   roomRegistry,
		router:  rt,
		writers: make(map[net.Conn]*connWriter),
		quit:    make(chan struct{}),
	}
}

// Start binds the listener and runs the accept loop until Stop is called or
// the listener fails. It blocks the calling goroutine.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.IP, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("connmgr: listen %s: %w", addr, err)
	}
	s.listener = ln
	logging.ConnManager.Info("listening on %s", addr)

	s.wg.Add(1)
	go s.superviseHeartbeats()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				logging.ConnManager.Error("accept failed: %v", err)
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Addr returns the listener's bound address. Only valid once Start has
// begun listening; mainly useful for tests that bind to port 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener, wakes the supervisor, and waits for every
// worker to drain (spec.md §7 "close listener, wake supervisor, drain
// workers").
func (s *Server) Stop() {
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}

	s.mu.Lock()
	for conn := range s.writers {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	logging.ConnManager.Info("connection manager stopped")
}

// handleConn is the per-client worker of spec.md §4.6: reads LF-framed
// lines (cap 8 KiB), routes each through the Router, and executes the
// resulting plan.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.NewString()

	w := newConnWriter(conn)
	s.mu.Lock()
	s.writers[conn] = w
	s.mu.Unlock()

	logging.ConnManager.Info("connection %s accepted from %s", connID, conn.RemoteAddr())

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, wire.MaxFrameBytes), wire.MaxFrameBytes)

	protocolTeardown := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		sender, plan := s.router.Dispatch(conn, line)
		if s.execute(w, sender, plan) {
			protocolTeardown = true
			break
		}
	}

	logging.ConnManager.Debug("connection %s closing", connID)
	s.teardown(conn, w, protocolTeardown)
}

// execute sends every outbound message in plan according to its delivery
// mode. It returns true if the batch contained a disconnect-signalling
// reply, in which case the caller shuts the connection down immediately
// after (spec.md §4.2 step 5).
func (s *Server) execute(origin *connWriter, sender string, plan router.Plan) (disconnect bool) {
	for _, out := range plan {
		switch out.Mode {
		case router.Reply:
			if err := origin.send(out.Msg); err != nil {
				logging.ConnManager.Warn("reply to %q failed: %v", sender, err)
			}
			if v, _ := out.Msg.Get("disconnect"); v == "true" {
				disconnect = true
			}
		case router.Targeted:
			s.sendTo(out.Target, out.Msg)
		case router.Broadcast:
			s.broadcastExcept(out.Target, sender, out.Msg)
		}
	}
	return disconnect
}

func (s *Server) sendTo(player string, msg *wire.Message) {
	socket, ok := s.players.SocketOf(player)
	if !ok {
		return
	}
	s.mu.Lock()
	w, ok := s.writers[socket]
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := w.send(msg); err != nil {
		logging.ConnManager.Warn("send to %q failed: %v", player, err)
	}
}

// broadcastExcept sends msg to every current member of roomID other than
// exclude. Individual send failures are logged, never aborting the rest of
// the broadcast (spec.md §4.6).
func (s *Server) broadcastExcept(roomID, exclude string, msg *wire.Message) {
	members, ok := s.rooms.Members(roomID)
	if !ok {
		return
	}
	for _, member := range members {
		if member == exclude {
			continue
		}
		s.sendTo(member, msg)
	}
}

// teardown resolves the player bound to conn (if any), marks them
// temporarily disconnected, notifies their room, and drops the writer
// entry. protocolViolation distinguishes a hard frame-level teardown from
// an ordinary socket-loss teardown in the notification's status field
// (spec.md §4.6).
func (s *Server) teardown(conn net.Conn, w *connWriter, protocolViolation bool) {
	s.mu.Lock()
	delete(s.writers, conn)
	s.mu.Unlock()

	name, ok := s.players.NameOf(conn)
	if !ok {
		return
	}

	if err := s.players.MarkTempDisconnected(name); err != nil {
		logging.ConnManager.Warn("marking %s disconnected: %v", name, err)
		return
	}

	status := "temporarily_disconnected"
	if protocolViolation {
		status = "invalid_message"
	}
	logging.ConnManager.Info("client %s disconnected (%s)", name, status)

	roomID := s.players.GetRoom(name)
	if roomID == "" {
		return
	}

	notice := wire.New(wire.PlayerDisconnected, name, roomID).Set("name", name).Set("status", status)
	s.broadcastExcept(roomID, name, notice)
}

// superviseHeartbeats implements spec.md §4.6: a single background task
// that periodically ages out silent connections (ping-timeout) and
// grace-expired temporary disconnects.
func (s *Server) superviseHeartbeats() {
	defer s.wg.Done()

	interval := time.Duration(s.cfg.HeartbeatCheckInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	pingTimeout := time.Duration(s.cfg.PlayerTimeoutSeconds) * time.Second
	graceWindow := time.Duration(s.cfg.GraceWindowSeconds) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.sweepTimeouts(pingTimeout)
			s.sweepGraceExpired(graceWindow)
		}
	}
}

func (s *Server) sweepTimeouts(pingTimeout time.Duration) {
	for _, name := range s.players.TimedOut(pingTimeout) {
		roomID := s.players.GetRoom(name)

		if err := s.players.MarkTempDisconnected(name); err != nil {
			continue
		}
		logging.Supervisor.Info("ping timeout: %s marked temporarily disconnected", name)

		if roomID == "" {
			continue
		}
		notice := wire.New(wire.PlayerDisconnected, name, roomID).
			Set("name", name).Set("status", "temporarily_disconnected")
		s.broadcastExcept(roomID, name, notice)
	}
}

func (s *Server) sweepGraceExpired(graceWindow time.Duration) {
	for _, name := range s.players.GraceExpired(graceWindow) {
		roomID := s.players.GetRoom(name)

		if roomID != "" {
			s.endGameByForfeit(roomID, name)
		}

		s.players.Remove(name)
		logging.Supervisor.Info("grace expired: %s removed", name)
	}
}

// endGameByForfeit declares every other member of roomID the winner over a
// grace-expired absentee, then destroys the room (spec.md §4.6 step 2).
func (s *Server) endGameByForfeit(roomID, absentee string) {
	var survivors []string

	s.rooms.WithRoom(roomID, func(room *rooms.Room) {
		for _, member := range room.Members {
			if member != absentee {
				survivors = append(survivors, member)
			}
		}
	})

	for _, winner := range survivors {
		s.sendTo(winner, wire.New(wire.GameOver, winner, roomID).
			Set("winner", winner).Set("reason", "opponent_disconnect"))
		s.sendTo(winner, wire.New(wire.RoomLeft, winner, roomID).Set("name", absentee))
		s.players.ClearRoom(winner)
	}

	s.rooms.Destroy(roomID)
}
