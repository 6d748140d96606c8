package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
)

var (
	errBadPayload     = errors.New("malformed payload")
	errUnknownMessage = errors.New("unknown message type")
)

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{model.ErrInvalidSquare, fiber.StatusBadRequest, "invalid_square"},
	{model.ErrInvalidPromotionKind, fiber.StatusBadRequest, "invalid_promotion_kind"},
	{errBadPayload, fiber.StatusBadRequest, "bad_payload"},
	{errUnknownMessage, fiber.StatusBadRequest, "unknown_message"},
	{service.ErrGameNotFound, fiber.StatusNotFound, "game_not_found"},
	{model.ErrNoPieceAtSquare, fiber.StatusConflict, "no_piece_at_square"},
	{model.ErrNotCurrentPlayersPiece, fiber.StatusConflict, "not_current_players_piece"},
	{model.ErrIllegalDestination, fiber.StatusConflict, "illegal_destination"},
	{model.ErrGameAlreadyOver, fiber.StatusConflict, "game_already_over"},
	{model.ErrPromotionChoiceRequired, fiber.StatusConflict, "promotion_choice_required"},
	{model.ErrNoPromotionPending, fiber.StatusConflict, "no_promotion_pending"},
}

// classify maps an error to its HTTP status and a stable code for clients.
func classify(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return fiber.StatusInternalServerError, "internal"
}

func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
