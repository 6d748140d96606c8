package service

import (
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// client wraps a connection with its own write lock; a websocket
// connection supports one concurrent writer.
type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// The connections watching a specific board
type sessionClients struct {
	clients map[string]*client // clientID -> client
	mu      sync.RWMutex
}

// Session hosts one GameState. mu is held for every read and mutation of
// state so exactly one move is in flight at a time.
type Session struct {
	ID      string
	mu      sync.Mutex
	state   *model.GameState
	clients *sessionClients
	logger  *log.Entry
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		state: model.NewGame(),
		clients: &sessionClients{
			clients: make(map[string]*client),
		},
		logger: log.WithField("game", id),
	}
}

func (s *Session) View() model.StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View()
}

func (s *Session) ProposeMoves(sq model.Square) []model.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ProposeMoves(sq)
}

// Move plays from -> to. When the move promotes and kind is empty the
// session waits for Promote.
func (s *Session) Move(from, to model.Square, kind model.PieceType) (model.StateView, model.ApplyStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.state.Play(from, to, kind)
	if err != nil {
		s.logger.WithError(err).WithField("from", from).WithField("to", to).Debug("move rejected")
		return model.StateView{}, "", err
	}
	view := s.state.View()
	s.logger.WithFields(log.Fields{
		"from":   from,
		"to":     to,
		"status": status,
		"result": view.Result.Status,
	}).Info("move applied")
	s.broadcast(view)
	return view, status, nil
}

func (s *Session) Promote(sq model.Square, kind model.PieceType) (model.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.CompletePromotion(sq, kind); err != nil {
		s.logger.WithError(err).WithField("square", sq).Debug("promotion rejected")
		return model.StateView{}, err
	}
	view := s.state.View()
	s.logger.WithField("square", sq).WithField("piece", kind).Info("promotion completed")
	s.broadcast(view)
	return view, nil
}

// Reset replaces the board with a fresh game.
func (s *Session) Reset() model.StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = model.NewGame()
	view := s.state.View()
	s.logger.Info("new game")
	s.broadcast(view)
	return view
}

// RegisterConnection adds conn under clientID and sends it the current
// board. Holding s.mu keeps the first state ahead of any later broadcast.
func (s *Session) RegisterConnection(clientID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients.mu.Lock()
	if old, exists := s.clients.clients[clientID]; exists && old.conn != conn {
		// the newest tab wins
		old.conn.Close()
	}
	c := &client{conn: conn}
	s.clients.clients[clientID] = c
	s.clients.mu.Unlock()
	s.logger.WithField("client", clientID).Info("connection registered")

	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.state.View())
	if err != nil {
		s.logger.WithError(err).Error("encode state")
		return
	}
	if err := c.send(msg); err != nil {
		s.logger.WithError(err).WithField("client", clientID).Warn("send initial state")
	}
}

// UnregisterConnection drops clientID only if conn is still its current
// connection.
func (s *Session) UnregisterConnection(clientID string, conn Conn) {
	s.clients.mu.Lock()
	defer s.clients.mu.Unlock()

	if c, exists := s.clients.clients[clientID]; exists && c.conn == conn {
		delete(s.clients.clients, clientID)
		s.logger.WithField("client", clientID).Info("connection unregistered")
	}
}

// Send writes msg to one client of the session.
func (s *Session) Send(clientID string, msg ws.Message) error {
	s.clients.mu.RLock()
	c, exists := s.clients.clients[clientID]
	s.clients.mu.RUnlock()
	if !exists {
		return ErrClientNotConnected
	}
	return c.send(msg)
}

// Close disconnects every client.
func (s *Session) Close() {
	s.clients.mu.Lock()
	defer s.clients.mu.Unlock()
	for id, c := range s.clients.clients {
		c.conn.Close()
		delete(s.clients.clients, id)
	}
}

func (s *Session) ConnectionCount() int {
	s.clients.mu.RLock()
	defer s.clients.mu.RUnlock()
	return len(s.clients.clients)
}

// broadcast pushes view to every client. Callers hold s.mu so updates reach
// clients in move order.
func (s *Session) broadcast(view model.StateView) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
	if err != nil {
		s.logger.WithError(err).Error("encode state")
		return
	}

	// Get a snapshot of clients so writes happen without the map lock
	s.clients.mu.RLock()
	active := make(map[string]*client, len(s.clients.clients))
	for id, c := range s.clients.clients {
		active[id] = c
	}
	s.clients.mu.RUnlock()

	for id, c := range active {
		if err := c.send(msg); err != nil {
			s.logger.WithError(err).WithField("client", id).Warn("dropping connection")
			s.clients.mu.Lock()
			if s.clients.clients[id] == c {
				delete(s.clients.clients, id)
			}
			s.clients.mu.Unlock()
		}
	}
}
