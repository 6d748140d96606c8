package model

import (
	"slices"
	"strconv"
	"strings"
	"testing"
)

var pieceLetters = map[byte]PieceType{'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight, 'P': Pawn}

// setup builds a position from placements such as "wKe1" or "bRd8". The
// pieces start without any move history.
func setup(t *testing.T, toMove Color, placements ...string) *GameState {
	t.Helper()
	g := newEmptyGame(toMove)
	for _, pl := range placements {
		if len(pl) != 4 {
			t.Fatalf("bad placement %q", pl)
		}
		color := White
		if pl[0] == 'b' {
			color = Black
		}
		kind, ok := pieceLetters[pl[1]]
		if !ok {
			t.Fatalf("bad piece letter in %q", pl)
		}
		g.board.Set(sq(t, pl[2:]), &Piece{ID: g.newID(), Type: kind, Color: color})
	}
	return g
}

// fromPlacement builds a position from the piece placement field of a FEN
// record. Pawns off their starting rank are marked as moved.
func fromPlacement(t *testing.T, placement string, toMove Color) *GameState {
	t.Helper()
	g := newEmptyGame(toMove)
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		t.Fatalf("placement %q: want 8 ranks", placement)
	}
	for i, row := range rows {
		rank, file := 7-i, 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			color := White
			if c >= 'a' && c <= 'z' {
				color = Black
				c -= 'a' - 'A'
			}
			kind, ok := pieceLetters[c]
			if !ok {
				t.Fatalf("placement %q: bad piece %q", placement, row[j])
			}
			at := Square{File: file, Rank: rank}
			p := &Piece{ID: g.newID(), Type: kind, Color: color}
			if kind == Pawn && rank != color.homeRank()+color.forward() {
				p.Moves = []Square{at}
			}
			g.board.Set(at, p)
			file++
		}
	}
	return g
}

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("parse %q: %v", name, err)
	}
	return s
}

// play applies moves written as "e2e4" or "e7e8q".
func play(t *testing.T, g *GameState, moves ...string) {
	t.Helper()
	for _, m := range moves {
		var kind PieceType
		if len(m) == 5 {
			kind = map[byte]PieceType{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}[m[4]]
		}
		if _, err := g.Play(sq(t, m[:2]), sq(t, m[2:4]), kind); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}

func names(squares []Square) []string {
	out := make([]string, 0, len(squares))
	for _, s := range squares {
		out = append(out, s.String())
	}
	slices.Sort(out)
	return out
}

// moveList flattens the legal moves of the side to move into sorted
// "fromto" strings.
func moveList(g *GameState) []string {
	var out []string
	if g.Result().Status != InProgress {
		return out
	}
	for from, tos := range g.LegalMoves(g.ToMove()) {
		for _, to := range tos {
			out = append(out, from.String()+to.String())
		}
	}
	slices.Sort(out)
	return out
}

// fenOf renders the position as FEN for the reference move generators.
func fenOf(g *GameState) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := g.board.PieceAt(Square{File: f, Rank: r})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := strings.ToUpper(string(p.Type[0]))
			if p.Type == Knight {
				letter = "N"
			}
			if p.Color == Black {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if g.toMove == Black {
		side = "b"
	}

	castling := ""
	for _, color := range []Color{White, Black} {
		king := g.board.King(color)
		for _, s := range castleSides {
			rook := g.board.PieceAt(Square{File: s.rookFrom, Rank: color.homeRank()})
			if king == nil || king.HasMoved() || king.Square != (Square{File: 4, Rank: color.homeRank()}) {
				continue
			}
			if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved() || !g.castling[color].allows(s.tag) {
				continue
			}
			letter := "K"
			if s.tag == TagCastleQueenside {
				letter = "Q"
			}
			if color == Black {
				letter = strings.ToLower(letter)
			}
			castling += letter
		}
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if t, ok := g.EnPassantTarget(); ok {
		ep = t.String()
	}
	return strings.Join([]string{sb.String(), side, castling, ep, "0", "1"}, " ")
}

// attackedPlain is a textbook attack test used to check the engine from the
// outside: every piece blocks a line, kings included.
func attackedPlain(g *GameState, target Square, by Color) bool {
	for _, p := range g.board.Pieces(by) {
		df, dr := target.File-p.Square.File, target.Rank-p.Square.Rank
		switch p.Type {
		case Pawn:
			if dr == by.forward() && abs(df) == 1 {
				return true
			}
		case Knight:
			if abs(df)*abs(dr) == 2 {
				return true
			}
		case King:
			if max(abs(df), abs(dr)) == 1 {
				return true
			}
		default:
			d, ok := directionBetween(p.Square, target)
			if !ok || !slidesAlong(p.Type, d) {
				continue
			}
			clear := true
			for s := p.Square.offset(d); s != target; s = s.offset(d) {
				if g.board.PieceAt(s) != nil {
					clear = false
					break
				}
			}
			if clear {
				return true
			}
		}
	}
	return false
}
