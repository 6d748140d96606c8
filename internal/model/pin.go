package model

// PinnerOf returns the enemy slider that pins p to its own king, or nil.
func (b *Board) PinnerOf(p *Piece) *Piece {
	if p.Type == King {
		return nil
	}
	king := b.King(p.Color)
	if king == nil {
		return nil
	}
	toKing, ok := directionBetween(p.Square, king.Square)
	if !ok || !b.pathClear(p.Square, king.Square) {
		return nil
	}
	away := direction{-toKing.df, -toKing.dr}
	for sq := p.Square.offset(away); sq.onBoard(); sq = sq.offset(away) {
		occ := b.PieceAt(sq)
		if occ == nil {
			continue
		}
		if occ.Color != p.Color && slidesAlong(occ.Type, away) {
			return occ
		}
		return nil
	}
	return nil
}

// pinLine is where a pinned piece may still go: the squares strictly between
// its king and the pinner, plus the pinner itself.
func (b *Board) pinLine(king, pinner *Piece) []Square {
	return append(b.SquaresBetween(king.Square, pinner.Square), pinner.Square)
}
