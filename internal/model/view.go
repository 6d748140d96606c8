package model

// StateView is a read-only, JSON friendly picture of a GameState for
// presentation layers.
type StateView struct {
	Board           map[Square]*Piece        `json:"board"`
	ToMove          Color                    `json:"toMove"`
	Result          Result                   `json:"result"`
	IsCheck         bool                     `json:"isCheck"`
	CheckedKing     *Square                  `json:"checkedKing"`
	EnPassantTarget *Square                  `json:"enPassantTarget"`
	PromotionSquare *Square                  `json:"promotionSquare"`
	Castling        map[Color]CastlingRights `json:"castling"`
	MoveHistory     []Move                   `json:"moveHistory"`
	LastMove        *Move                    `json:"lastMove"`
	CapturedPieces  CapturedPieces           `json:"capturedPieces"`
	Material        map[Color]int            `json:"material"`
}

// CapturedPieces lists the pieces each side has lost.
type CapturedPieces struct {
	White []*Piece `json:"white"`
	Black []*Piece `json:"black"`
}

func (g *GameState) View() StateView {
	v := StateView{
		Board:       make(map[Square]*Piece),
		ToMove:      g.toMove,
		Result:      g.result,
		Castling:    make(map[Color]CastlingRights),
		MoveHistory: g.History(),
		CapturedPieces: CapturedPieces{
			White: g.Captured(White),
			Black: g.Captured(Black),
		},
		Material: make(map[Color]int),
	}
	for _, color := range []Color{White, Black} {
		for _, p := range g.board.Pieces(color) {
			v.Board[p.Square] = p.snapshot()
			v.Material[color] += p.Value()
		}
		v.Castling[color] = g.CastlingRights(color)
	}

	side := g.toMove
	if g.result.Status == Checkmate {
		side = g.result.Winner.Opponent()
	}
	if g.IsInCheck(side) {
		v.IsCheck = true
		sq := g.board.King(side).Square
		v.CheckedKing = &sq
	}
	if sq, ok := g.EnPassantTarget(); ok {
		v.EnPassantTarget = &sq
	}
	if sq, ok := g.PendingPromotion(); ok {
		v.PromotionSquare = &sq
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		v.LastMove = &last
	}
	return v
}
