package model

type MoveTag string

const (
	TagNormal          MoveTag = "normal"
	TagDoublePawnPush  MoveTag = "double_pawn_push"
	TagEnPassant       MoveTag = "en_passant"
	TagCastleKingside  MoveTag = "castle_kingside"
	TagCastleQueenside MoveTag = "castle_queenside"
	TagPromotion       MoveTag = "promotion"
)

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Move is one half-move. Piece and Captured are snapshots taken before the
// move was applied.
type Move struct {
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	Piece          *Piece          `json:"piece"`
	Captured       *Piece          `json:"captured"`
	Tag            MoveTag         `json:"tag"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	CastleRookMove *CastleRookMove `json:"castleRookMove,omitempty"`
}

// captureSquare is where the captured piece stood. It differs from To only
// for en passant.
func (m Move) captureSquare() Square {
	if m.Tag == TagEnPassant {
		return Square{File: m.To.File, Rank: m.From.Rank}
	}
	return m.To
}

type castleSide struct {
	tag      MoveTag
	rookFrom int
	rookTo   int
	kingTo   int
}

var castleSides = []castleSide{
	{tag: TagCastleKingside, rookFrom: 7, rookTo: 5, kingTo: 6},
	{tag: TagCastleQueenside, rookFrom: 0, rookTo: 3, kingTo: 2},
}

// CastlingRights records what has been lost for one side. Flags only ever go
// from false to true.
type CastlingRights struct {
	KingMoved          bool `json:"kingMoved"`
	KingsideRookMoved  bool `json:"kingsideRookMoved"`
	QueensideRookMoved bool `json:"queensideRookMoved"`
}

func (c CastlingRights) allows(tag MoveTag) bool {
	if c.KingMoved {
		return false
	}
	switch tag {
	case TagCastleKingside:
		return !c.KingsideRookMoved
	case TagCastleQueenside:
		return !c.QueensideRookMoved
	}
	return false
}

func (c *CastlingRights) loseRook(file int) {
	switch file {
	case 7:
		c.KingsideRookMoved = true
	case 0:
		c.QueensideRookMoved = true
	}
}
