package controller

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

type recordingConn struct {
	mu   sync.Mutex
	msgs []ws.Message
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, v.(ws.Message))
	return nil
}

func (r *recordingConn) Close() error { return nil }

func (r *recordingConn) last(t *testing.T) ws.Message {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		t.Fatal("no messages")
	}
	return r.msgs[len(r.msgs)-1]
}

func message(t *testing.T, typ ws.MessageType, payload any) ws.Message {
	t.Helper()
	msg, err := ws.NewMessage(typ, payload)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func newWSFixture(t *testing.T) (*WebSocketController, string, *recordingConn) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager())
	id, _, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	conn := &recordingConn{}
	if err := gs.RegisterConnection(id, "tab", conn); err != nil {
		t.Fatal(err)
	}
	return NewWebSocketController(gs), id, conn
}

func TestSelectRepliesWithLegalMoves(t *testing.T) {
	wsc, id, conn := newWSFixture(t)

	if err := wsc.handleMessage(id, "tab", message(t, ws.MessageTypeSelect, ws.SelectPayload{Square: "g1"})); err != nil {
		t.Fatal(err)
	}
	reply := conn.last(t)
	if reply.Type != ws.MessageTypeLegalMoves {
		t.Fatalf("reply type = %s", reply.Type)
	}
	var p ws.LegalMovesPayload
	if err := json.Unmarshal(reply.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Square != "g1" || len(p.Moves) != 2 || p.Moves[0] != "f3" || p.Moves[1] != "h3" {
		t.Fatalf("payload = %+v", p)
	}
}

func TestMovePromoteAndNewGameBroadcast(t *testing.T) {
	wsc, id, conn := newWSFixture(t)

	for _, m := range []string{"a2a4", "b7b5", "a4b5", "a7a6", "b5a6", "c8b7", "a6b7", "b8c6", "b7a8"} {
		if err := wsc.handleMessage(id, "tab", message(t, ws.MessageTypeMove, ws.MovePayload{From: m[:2], To: m[2:]})); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
	state := decodeState(t, conn.last(t))
	if state.PromotionSquare == nil || state.PromotionSquare.String() != "a8" {
		t.Fatalf("promotion square = %v", state.PromotionSquare)
	}

	if err := wsc.handleMessage(id, "tab", message(t, ws.MessageTypePromote, ws.PromotePayload{Square: "a8", Piece: "bishop"})); err != nil {
		t.Fatal(err)
	}
	state = decodeState(t, conn.last(t))
	if p := state.Board[model.MustSquare("a8")]; p == nil || p.Type != model.Bishop {
		t.Fatalf("a8 = %+v, want bishop", p)
	}

	if err := wsc.handleMessage(id, "tab", ws.Message{Type: ws.MessageTypeNewGame}); err != nil {
		t.Fatal(err)
	}
	state = decodeState(t, conn.last(t))
	if len(state.MoveHistory) != 0 || len(state.Board) != 32 {
		t.Fatalf("new game state = %+v", state)
	}
}

func TestHandleMessageErrors(t *testing.T) {
	wsc, id, _ := newWSFixture(t)

	tests := []struct {
		name string
		msg  ws.Message
		want error
		code string
	}{
		{"unknown type", ws.Message{Type: "resign"}, errUnknownMessage, "unknown_message"},
		{"bad payload", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`"e2e4"`)}, errBadPayload, "bad_payload"},
		{"illegal move", message(t, ws.MessageTypeMove, ws.MovePayload{From: "e2", To: "e5"}), model.ErrIllegalDestination, "illegal_destination"},
		{"bad square", message(t, ws.MessageTypeSelect, ws.SelectPayload{Square: "i1"}), model.ErrInvalidSquare, "invalid_square"},
		{"bad piece", message(t, ws.MessageTypePromote, ws.PromotePayload{Square: "a8", Piece: "wizard"}), model.ErrInvalidPromotionKind, "invalid_promotion_kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wsc.handleMessage(id, "tab", tt.msg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if _, code := classify(err); code != tt.code {
				t.Fatalf("code = %s, want %s", code, tt.code)
			}
		})
	}

	if err := wsc.handleMessage("missing", "tab", ws.Message{Type: ws.MessageTypeNewGame}); !errors.Is(err, service.ErrGameNotFound) {
		t.Fatalf("unknown game: err = %v", err)
	}
}

func decodeState(t *testing.T, msg ws.Message) model.StateView {
	t.Helper()
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type = %s, want gameState", msg.Type)
	}
	var view model.StateView
	if err := json.Unmarshal(msg.Payload, &view); err != nil {
		t.Fatal(err)
	}
	return view
}
