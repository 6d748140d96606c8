package model

// IsAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	for _, p := range b.Pieces(by) {
		if b.attacks(p, sq) {
			return true
		}
	}
	return false
}

// Attackers returns every piece of color by that attacks sq.
func (b *Board) Attackers(sq Square, by Color) []*Piece {
	var out []*Piece
	for _, p := range b.Pieces(by) {
		if b.attacks(p, sq) {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) attacks(p *Piece, target Square) bool {
	switch {
	case p.Type == Pawn:
		return containsSquare(pawnAttacks(p.Square, p.Color), target)
	case p.Type.isSlider():
		d, ok := directionBetween(p.Square, target)
		if !ok || !slidesAlong(p.Type, d) {
			return false
		}
		for sq := p.Square.offset(d); sq.onBoard(); sq = sq.offset(d) {
			if sq == target {
				return true
			}
			occ := b.PieceAt(sq)
			if occ == nil {
				continue
			}
			// The defending king does not shield the squares behind it.
			if occ.Type == King && occ.Color != p.Color {
				continue
			}
			return false
		}
		return false
	default:
		return containsSquare(generate(p).Steps, target)
	}
}

func slidesAlong(kind PieceType, d direction) bool {
	switch kind {
	case Queen:
		return true
	case Rook:
		return !d.diagonal()
	case Bishop:
		return d.diagonal()
	}
	return false
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
