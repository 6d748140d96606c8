package model

type direction struct {
	df int
	dr int
}

var (
	north     = direction{0, 1}
	northEast = direction{1, 1}
	east      = direction{1, 0}
	southEast = direction{1, -1}
	south     = direction{0, -1}
	southWest = direction{-1, -1}
	west      = direction{-1, 0}
	northWest = direction{-1, 1}

	rookDirs   = []direction{north, east, south, west}
	bishopDirs = []direction{northEast, southEast, southWest, northWest}
	queenDirs  = []direction{north, northEast, east, southEast, south, southWest, west, northWest}
	knightDirs = []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// directionBetween returns the unit step from a towards z when both lie on a
// common rank, file or diagonal.
func directionBetween(a, z Square) (direction, bool) {
	df, dr := z.File-a.File, z.Rank-a.Rank
	if df == 0 && dr == 0 {
		return direction{}, false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return direction{}, false
	}
	return direction{sign(df), sign(dr)}, true
}

func (d direction) diagonal() bool {
	return d.df != 0 && d.dr != 0
}

// reach is the occupancy-blind geometry of a piece. Steps holds the squares of
// non-sliders; Rays holds one outward-ordered sequence per slider direction.
type reach struct {
	Steps []Square
	Rays  [][]Square
}

var generators = map[PieceType]func(p *Piece) reach{
	King:   func(p *Piece) reach { return reach{Steps: offsets(p.Square, queenDirs)} },
	Knight: func(p *Piece) reach { return reach{Steps: offsets(p.Square, knightDirs)} },
	Pawn:   func(p *Piece) reach { return reach{Steps: pawnPushes(p)} },
	Queen:  func(p *Piece) reach { return reach{Rays: rays(p.Square, queenDirs)} },
	Rook:   func(p *Piece) reach { return reach{Rays: rays(p.Square, rookDirs)} },
	Bishop: func(p *Piece) reach { return reach{Rays: rays(p.Square, bishopDirs)} },
}

func generate(p *Piece) reach {
	gen, ok := generators[p.Type]
	if !ok {
		return reach{}
	}
	return gen(p)
}

func offsets(from Square, dirs []direction) []Square {
	out := make([]Square, 0, len(dirs))
	for _, d := range dirs {
		if sq := from.offset(d); sq.onBoard() {
			out = append(out, sq)
		}
	}
	return out
}

func ray(from Square, d direction) []Square {
	var out []Square
	for sq := from.offset(d); sq.onBoard(); sq = sq.offset(d) {
		out = append(out, sq)
	}
	return out
}

func rays(from Square, dirs []direction) [][]Square {
	out := make([][]Square, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, ray(from, d))
	}
	return out
}

// pawnPushes returns the forward squares. The double step depends on the
// pawn's own move list, not on the rank it stands on.
func pawnPushes(p *Piece) []Square {
	fwd := direction{0, p.Color.forward()}
	one := p.Square.offset(fwd)
	if !one.onBoard() {
		return nil
	}
	out := []Square{one}
	if !p.HasMoved() {
		if two := one.offset(fwd); two.onBoard() {
			out = append(out, two)
		}
	}
	return out
}

// pawnAttacks returns the two forward diagonals of a pawn of color on sq.
func pawnAttacks(sq Square, color Color) []Square {
	fwd := color.forward()
	return offsets(sq, []direction{{-1, fwd}, {1, fwd}})
}
