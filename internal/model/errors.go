package model

import "errors"

var (
	ErrInvalidSquare           = errors.New("invalid square")
	ErrNoPieceAtSquare         = errors.New("no piece at square")
	ErrNotCurrentPlayersPiece  = errors.New("not current player's piece")
	ErrIllegalDestination      = errors.New("illegal destination")
	ErrGameAlreadyOver         = errors.New("game already over")
	ErrPromotionChoiceRequired = errors.New("promotion choice required")
	ErrInvalidPromotionKind    = errors.New("invalid promotion kind")
	ErrNoPromotionPending      = errors.New("no promotion pending")
)
