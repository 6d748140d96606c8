package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/google/uuid"
)

// GameService is the string-facing API the controllers call. It parses
// square and piece names and routes to the right session.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// MoveRequest is a move as sent by a client. Promotion may be empty.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (gs *GameService) CreateGame() (string, model.StateView, error) {
	gameID := uuid.New().String()

	session, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", model.StateView{}, fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, session.View(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.StateView, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.StateView{}, err
	}
	return session.View(), nil
}

func (gs *GameService) ProposeMoves(gameID, square string) ([]model.Square, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return session.ProposeMoves(sq), nil
}

func (gs *GameService) MakeMove(gameID string, req MoveRequest) (model.StateView, model.ApplyStatus, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.StateView{}, "", err
	}
	from, err := model.ParseSquare(req.From)
	if err != nil {
		return model.StateView{}, "", err
	}
	to, err := model.ParseSquare(req.To)
	if err != nil {
		return model.StateView{}, "", err
	}
	var kind model.PieceType
	if req.Promotion != "" {
		if kind, err = parsePromotion(req.Promotion); err != nil {
			return model.StateView{}, "", err
		}
	}
	return session.Move(from, to, kind)
}

func (gs *GameService) CompletePromotion(gameID, square, piece string) (model.StateView, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.StateView{}, err
	}
	sq, err := model.ParseSquare(square)
	if err != nil {
		return model.StateView{}, err
	}
	kind, err := parsePromotion(piece)
	if err != nil {
		return model.StateView{}, err
	}
	return session.Promote(sq, kind)
}

func (gs *GameService) ResetGame(gameID string) (model.StateView, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.StateView{}, err
	}
	return session.Reset(), nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID, clientID string, conn Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	session.RegisterConnection(clientID, conn)
	return nil
}

func (gs *GameService) UnregisterConnection(gameID, clientID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(clientID, conn)
}

// Send writes msg to one client of a game.
func (gs *GameService) Send(gameID, clientID string, msg ws.Message) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Send(clientID, msg)
}

func parsePromotion(name string) (model.PieceType, error) {
	kind, err := model.ParsePieceType(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidPromotionKind, err)
	}
	return kind, nil
}
