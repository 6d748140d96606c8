package controller

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals("clientID").(string)
	logger := log.WithFields(log.Fields{"game": gameID, "client": clientID})

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		wsc.writeError(c, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read loop finished")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Warn("malformed message")
			wsc.reply(gameID, clientID, errorMessage(err, "bad_payload"))
			continue
		}

		if err := wsc.handleMessage(gameID, clientID, msg); err != nil {
			logger.WithError(err).WithField("type", msg.Type).Debug("message refused")
			_, code := classify(err)
			wsc.reply(gameID, clientID, errorMessage(err, code))
		}
	}
}

// handleMessage runs one inbound message. Mutations reach the client through
// the session broadcast; select is answered directly.
func (wsc *WebSocketController) handleMessage(gameID, clientID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var p ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("%w: %v", errBadPayload, err)
		}
		moves, err := wsc.gameService.ProposeMoves(gameID, p.Square)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(moves))
		for _, m := range moves {
			names = append(names, m.String())
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{Square: p.Square, Moves: names})
		if err != nil {
			return err
		}
		wsc.reply(gameID, clientID, reply)
		return nil

	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("%w: %v", errBadPayload, err)
		}
		_, _, err := wsc.gameService.MakeMove(gameID, service.MoveRequest{From: p.From, To: p.To, Promotion: p.Promotion})
		return err

	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("%w: %v", errBadPayload, err)
		}
		_, err := wsc.gameService.CompletePromotion(gameID, p.Square, p.Piece)
		return err

	case ws.MessageTypeNewGame:
		_, err := wsc.gameService.ResetGame(gameID)
		return err

	default:
		return fmt.Errorf("%w: %s", errUnknownMessage, msg.Type)
	}
}

func (wsc *WebSocketController) reply(gameID, clientID string, msg ws.Message) {
	if err := wsc.gameService.Send(gameID, clientID, msg); err != nil {
		log.WithError(err).WithField("game", gameID).WithField("client", clientID).Warn("reply failed")
	}
}

// writeError is used before the connection is registered with a session.
func (wsc *WebSocketController) writeError(c *websocket.Conn, err error) {
	_, code := classify(err)
	c.WriteJSON(errorMessage(err, code))
}

func errorMessage(err error, code string) ws.Message {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error(), Code: code})
	return msg
}
