package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func ParsePieceType(s string) (PieceType, error) {
	switch p := PieceType(s); p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return p, nil
	}
	return "", fmt.Errorf("unknown piece type %q", s)
}

// Value is the conventional material value. The king carries none.
func (p PieceType) Value() int {
	switch p {
	case Queen:
		return 9
	case Rook:
		return 5
	case Bishop, Knight:
		return 3
	case Pawn:
		return 1
	}
	return 0
}

func (p PieceType) isSlider() bool {
	return p == Queen || p == Rook || p == Bishop
}

func (p PieceType) canPromoteTo() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the rank delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) lastRank() int {
	return 7 - c.homeRank()
}

type Piece struct {
	ID     int       `json:"id"`
	Type   PieceType `json:"type"`
	Color  Color     `json:"color"`
	Square Square    `json:"square"`
	// Moves holds every square the piece has moved to, in order.
	Moves []Square `json:"moves"`
}

func (p *Piece) HasMoved() bool {
	return len(p.Moves) > 0
}

func (p *Piece) Value() int {
	return p.Type.Value()
}

func (p *Piece) lastMove() (Square, bool) {
	if len(p.Moves) == 0 {
		return Square{}, false
	}
	return p.Moves[len(p.Moves)-1], true
}

func (p *Piece) snapshot() *Piece {
	cp := *p
	cp.Moves = append([]Square(nil), p.Moves...)
	return &cp
}

// Board is the single owner of square occupancy.
type Board struct {
	squares [8][8]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.onBoard() {
		return nil
	}
	return b.squares[sq.Rank][sq.File]
}

// Set places p on sq (nil clears it) and keeps p.Square in sync.
func (b *Board) Set(sq Square, p *Piece) {
	if !sq.onBoard() {
		return
	}
	b.squares[sq.Rank][sq.File] = p
	if p != nil {
		p.Square = sq
	}
}

// put writes a slot without touching the piece. Only scratch boards use it.
func (b *Board) put(sq Square, p *Piece) {
	b.squares[sq.Rank][sq.File] = p
}

func (b *Board) move(from, to Square) {
	p := b.PieceAt(from)
	b.Set(from, nil)
	b.Set(to, p)
}

// SquaresBetween returns the squares strictly between a and z walking from a.
// The result is empty when a and z share no rank, file or diagonal.
func (b *Board) SquaresBetween(a, z Square) []Square {
	d, ok := directionBetween(a, z)
	if !ok {
		return nil
	}
	var out []Square
	for sq := a.offset(d); sq != z; sq = sq.offset(d) {
		out = append(out, sq)
	}
	return out
}

func (b *Board) pathClear(a, z Square) bool {
	for _, sq := range b.SquaresBetween(a, z) {
		if b.PieceAt(sq) != nil {
			return false
		}
	}
	return true
}

// Pieces returns the pieces of color in a1..h8 order.
func (b *Board) Pieces(color Color) []*Piece {
	var out []*Piece
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.squares[r][f]; p != nil && p.Color == color {
				out = append(out, p)
			}
		}
	}
	return out
}

func (b *Board) King(color Color) *Piece {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

// clone copies occupancy only. The pieces are shared with b.
func (b *Board) clone() *Board {
	cp := *b
	return &cp
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newStandardBoard(nextID func() int) *Board {
	board := NewBoard()
	for _, color := range []Color{White, Black} {
		home := color.homeRank()
		for file, kind := range backRank {
			board.Set(Square{File: file, Rank: home}, &Piece{ID: nextID(), Type: kind, Color: color})
		}
		for file := 0; file < 8; file++ {
			board.Set(Square{File: file, Rank: home + color.forward()}, &Piece{ID: nextID(), Type: Pawn, Color: color})
		}
	}
	return board
}
