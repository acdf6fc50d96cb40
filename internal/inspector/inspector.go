// Package inspector is a single-purpose step-stream server for watching
// a live gvm.VM run from outside the process: each completed Step
// broadcasts a StepEvent (opcode name, cursor, register depth, current
// value) to every attached websocket client.
//
// Adapted from the teacher's internal/network websocket server
// (websocket.go, websocket_server.go), which was a general-purpose
// client/server pair keyed by connection ID. This package keeps the
// same upgrade-and-broadcast shape but narrows it to one server, one
// message type, and a session id instead of a generic connection
// registry, since the core forbids concurrency inside the VM itself
// (spec §5) — the websocket side only ever observes, never drives,
// stepping.
package inspector

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"garnish/internal/gheap"
	"garnish/internal/gvm"
)

// StepEvent is broadcast after every VM.Step call that the host chooses
// to report (spec §5: "the natural boundary is between instructions").
type StepEvent struct {
	SessionID  string `json:"session_id"`
	Cursor     int    `json:"cursor"`
	Opcode     string `json:"opcode"`
	State      string `json:"state"`
	Registers  int    `json:"register_len"`
	ValueStack int    `json:"value_stack_len"`
	JumpPath   int    `json:"jump_path_len"`
	Current    string `json:"current_value"`
}

// Server upgrades HTTP connections to websockets and broadcasts every
// StepEvent it is handed to all currently-attached clients. SessionID
// distinguishes one VM run's event stream from another's for a client
// that watches more than one server over time (SPEC_FULL.md §11: this
// is the uuid dependency's home).
type Server struct {
	SessionID string

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*websocket.Conn
}

// New constructs a Server with a fresh session id.
func New() *Server {
	return &Server{
		SessionID: uuid.NewString(),
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:   make(map[string]*websocket.Conn),
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// resulting connection as a broadcast target until it closes.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	id := uuid.NewString()
	srv.mu.Lock()
	srv.clients[id] = conn
	srv.mu.Unlock()

	defer func() {
		srv.mu.Lock()
		delete(srv.clients, id)
		srv.mu.Unlock()
		conn.Close()
	}()

	// Clients are passive observers; drain and discard any frames they
	// send so the read side doesn't back up the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends event to every currently-attached client, dropping
// (and unregistering) any connection that errors on write.
func (srv *Server) Broadcast(event StepEvent) {
	event.SessionID = srv.SessionID
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	srv.mu.RLock()
	targets := make(map[string]*websocket.Conn, len(srv.clients))
	for id, c := range srv.clients {
		targets[id] = c
	}
	srv.mu.RUnlock()

	for id, c := range targets {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			srv.mu.Lock()
			delete(srv.clients, id)
			srv.mu.Unlock()
		}
	}
}

// ClientCount reports how many websocket clients are currently attached.
func (srv *Server) ClientCount() int {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	return len(srv.clients)
}

// StepAndBroadcast runs exactly one vm.Step, then broadcasts the
// resulting StepEvent built from store's post-step state. Returns the
// step's error, if any, unchanged (the inspector never swallows a core
// error — it only observes alongside it, per spec §7 propagation policy).
func StepAndBroadcast(srv *Server, vm *gvm.VM, store *gheap.Store, lastOpcode string) error {
	err := vm.Step()
	current := "()"
	if idx, ok := vm.Result(); ok {
		current = store.Display(idx)
	}
	srv.Broadcast(StepEvent{
		Cursor:     store.GetInstructionCursor(),
		Opcode:     lastOpcode,
		State:      vm.State().String(),
		Registers:  store.GetRegisterLen(),
		ValueStack: store.ValueStackLen(),
		JumpPath:   store.JumpPathLen(),
		Current:    current,
	})
	return err
}
