package model

// legalMoves returns the destinations p may legally move to in the current
// position, regardless of whose turn it is.
func (g *GameState) legalMoves(p *Piece) []Square {
	if p.Type == King {
		return g.kingMoves(p)
	}
	b := g.board
	king := b.King(p.Color)
	if king == nil {
		return g.candidates(p)
	}
	checkers := b.Attackers(king.Square, p.Color.Opponent())
	if len(checkers) >= 2 {
		return nil
	}

	moves := g.candidates(p)
	if pinner := b.PinnerOf(p); pinner != nil {
		moves = intersect(moves, b.pinLine(king, pinner))
	}
	if len(checkers) == 1 {
		moves = intersect(moves, g.checkResolutions(p, king, checkers[0]))
	}

	out := moves[:0]
	for _, sq := range moves {
		if g.enPassantVictim(p, sq) != nil && g.enPassantExposesKing(p, sq) {
			continue
		}
		out = append(out, sq)
	}
	return out
}

// candidates truncates the raw geometry of a non-king piece by occupancy.
func (g *GameState) candidates(p *Piece) []Square {
	b := g.board
	r := generate(p)
	var out []Square
	if p.Type == Pawn {
		for _, sq := range r.Steps {
			if b.PieceAt(sq) != nil {
				break
			}
			out = append(out, sq)
		}
		for _, sq := range pawnAttacks(p.Square, p.Color) {
			if occ := b.PieceAt(sq); occ != nil {
				if occ.Color != p.Color {
					out = append(out, sq)
				}
			} else if g.enPassantVictim(p, sq) != nil {
				out = append(out, sq)
			}
		}
		return out
	}
	for _, sq := range r.Steps {
		if occ := b.PieceAt(sq); occ == nil || occ.Color != p.Color {
			out = append(out, sq)
		}
	}
	for _, ray := range r.Rays {
		for _, sq := range ray {
			occ := b.PieceAt(sq)
			if occ == nil {
				out = append(out, sq)
				continue
			}
			if occ.Color != p.Color {
				out = append(out, sq)
			}
			break
		}
	}
	return out
}

// checkResolutions lists the squares that answer a single check from checker:
// its own square, and for sliders the squares between it and the king.
func (g *GameState) checkResolutions(p, king, checker *Piece) []Square {
	out := []Square{checker.Square}
	if checker.Type.isSlider() {
		out = append(out, g.board.SquaresBetween(checker.Square, king.Square)...)
	}
	if g.enPassant != nil && g.enPassantVictim(p, *g.enPassant) == checker {
		out = append(out, *g.enPassant)
	}
	return out
}

func (g *GameState) kingMoves(k *Piece) []Square {
	b := g.board
	opp := k.Color.Opponent()
	var out []Square
	for _, sq := range generate(k).Steps {
		if occ := b.PieceAt(sq); occ != nil && occ.Color == k.Color {
			continue
		}
		if b.IsAttacked(sq, opp) {
			continue
		}
		out = append(out, sq)
	}
	for _, side := range g.castleOptions(k) {
		out = append(out, Square{File: side.kingTo, Rank: k.Square.Rank})
	}
	return out
}

// castleOptions returns the castles currently open to king k. The king and
// rook must be unmoved, the squares between them empty, and the king may not
// start on, cross or land on an attacked square.
func (g *GameState) castleOptions(k *Piece) []castleSide {
	b := g.board
	rights := g.castling[k.Color]
	home := k.Color.homeRank()
	if rights.KingMoved || k.HasMoved() || k.Square != (Square{File: 4, Rank: home}) {
		return nil
	}
	opp := k.Color.Opponent()
	if b.IsAttacked(k.Square, opp) {
		return nil
	}
	var out []castleSide
	for _, side := range castleSides {
		if !rights.allows(side.tag) {
			continue
		}
		rook := b.PieceAt(Square{File: side.rookFrom, Rank: home})
		if rook == nil || rook.Type != Rook || rook.Color != k.Color || rook.HasMoved() {
			continue
		}
		if !b.pathClear(k.Square, rook.Square) {
			continue
		}
		dest := Square{File: side.kingTo, Rank: home}
		transit := append(b.SquaresBetween(k.Square, dest), dest)
		safe := true
		for _, sq := range transit {
			if b.IsAttacked(sq, opp) {
				safe = false
				break
			}
		}
		if safe {
			out = append(out, side)
		}
	}
	return out
}

// enPassantVictim returns the pawn that pawn p would capture en passant by
// moving to target, or nil when target is not a qualifying en passant capture.
func (g *GameState) enPassantVictim(p *Piece, target Square) *Piece {
	if p.Type != Pawn || g.enPassant == nil || *g.enPassant != target {
		return nil
	}
	if abs(target.File-p.Square.File) != 1 || target.Rank != p.Square.Rank+p.Color.forward() {
		return nil
	}
	victimSq := Square{File: target.File, Rank: p.Square.Rank}
	victim := g.board.PieceAt(victimSq)
	if victim == nil || victim.Type != Pawn || victim.Color == p.Color {
		return nil
	}
	if last, ok := victim.lastMove(); !ok || last != victimSq {
		return nil
	}
	if len(g.history) == 0 {
		return nil
	}
	prev := g.history[len(g.history)-1]
	if prev.Tag != TagDoublePawnPush || prev.To != victimSq {
		return nil
	}
	return victim
}

// enPassantExposesKing plays the capture on a scratch board. Removing two
// pawns from one rank can open a line to the king that no pin accounts for.
func (g *GameState) enPassantExposesKing(p *Piece, target Square) bool {
	king := g.board.King(p.Color)
	if king == nil {
		return false
	}
	scratch := g.board.clone()
	scratch.put(Square{File: target.File, Rank: p.Square.Rank}, nil)
	scratch.put(p.Square, nil)
	scratch.put(target, p)
	return scratch.IsAttacked(king.Square, p.Color.Opponent())
}

func intersect(squares, allowed []Square) []Square {
	var out []Square
	for _, sq := range squares {
		if containsSquare(allowed, sq) {
			out = append(out, sq)
		}
	}
	return out
}
