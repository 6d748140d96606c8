package model

import (
	"fmt"
)

type Status string

const (
	InProgress Status = "in_progress"
	Checkmate  Status = "checkmate"
	Stalemate  Status = "stalemate"
)

type Result struct {
	Status Status `json:"status"`
	Winner Color  `json:"winner,omitempty"`
}

// ApplyStatus tells the caller whether a move finished the turn or is waiting
// for a promotion choice.
type ApplyStatus string

const (
	MoveCompleted    ApplyStatus = "completed"
	PromotionPending ApplyStatus = "promotion_pending"
)

// GameState owns a board and everything needed to decide legality on it.
// It holds no locks; hosts that share it across goroutines must serialise
// mutations themselves.
type GameState struct {
	board     *Board
	toMove    Color
	history   []Move
	castling  map[Color]*CastlingRights
	enPassant *Square
	result    Result
	pending   *Move
	captured  map[Color][]*Piece
	nextID    int
}

// NewGame returns the standard starting position with white to move.
func NewGame() *GameState {
	g := newEmptyGame(White)
	g.board = newStandardBoard(g.newID)
	return g
}

func newEmptyGame(toMove Color) *GameState {
	return &GameState{
		board:  NewBoard(),
		toMove: toMove,
		castling: map[Color]*CastlingRights{
			White: {},
			Black: {},
		},
		result: Result{Status: InProgress},
		captured: map[Color][]*Piece{
			White: {},
			Black: {},
		},
	}
}

func (g *GameState) newID() int {
	g.nextID++
	return g.nextID
}

func (g *GameState) ToMove() Color {
	return g.toMove
}

func (g *GameState) Result() Result {
	return g.result
}

func (g *GameState) History() []Move {
	return append([]Move(nil), g.history...)
}

// PieceAt returns a copy of the piece on sq, or nil.
func (g *GameState) PieceAt(sq Square) *Piece {
	p := g.board.PieceAt(sq)
	if p == nil {
		return nil
	}
	return p.snapshot()
}

func (g *GameState) EnPassantTarget() (Square, bool) {
	if g.enPassant == nil {
		return Square{}, false
	}
	return *g.enPassant, true
}

func (g *GameState) CastlingRights(color Color) CastlingRights {
	return *g.castling[color]
}

// PendingPromotion returns the square of a pawn awaiting CompletePromotion.
func (g *GameState) PendingPromotion() (Square, bool) {
	if g.pending == nil {
		return Square{}, false
	}
	return g.pending.To, true
}

// Captured returns copies of the pieces color has lost.
func (g *GameState) Captured(color Color) []*Piece {
	out := make([]*Piece, 0, len(g.captured[color]))
	for _, p := range g.captured[color] {
		out = append(out, p.snapshot())
	}
	return out
}

func (g *GameState) IsAttacked(sq Square, by Color) bool {
	return g.board.IsAttacked(sq, by)
}

func (g *GameState) IsInCheck(color Color) bool {
	king := g.board.King(color)
	if king == nil {
		return false
	}
	return g.board.IsAttacked(king.Square, color.Opponent())
}

// PinnerOf returns a copy of the piece pinning the piece on sq, or nil.
func (g *GameState) PinnerOf(sq Square) *Piece {
	p := g.board.PieceAt(sq)
	if p == nil {
		return nil
	}
	if pinner := g.board.PinnerOf(p); pinner != nil {
		return pinner.snapshot()
	}
	return nil
}

// ProposeMoves returns the sorted legal destinations of the piece on sq. It is
// empty when the square is empty, holds the opponent's piece, a promotion is
// pending or the game is over.
func (g *GameState) ProposeMoves(sq Square) []Square {
	if g.result.Status != InProgress || g.pending != nil {
		return nil
	}
	p := g.board.PieceAt(sq)
	if p == nil || p.Color != g.toMove {
		return nil
	}
	moves := g.legalMoves(p)
	sortSquares(moves)
	return moves
}

// LegalMoves maps every piece of color that can move to its destinations.
func (g *GameState) LegalMoves(color Color) map[Square][]Square {
	out := make(map[Square][]Square)
	for _, p := range g.board.Pieces(color) {
		if moves := g.legalMoves(p); len(moves) > 0 {
			sortSquares(moves)
			out[p.Square] = moves
		}
	}
	return out
}

func (g *GameState) hasLegalMoves(color Color) bool {
	for _, p := range g.board.Pieces(color) {
		if len(g.legalMoves(p)) > 0 {
			return true
		}
	}
	return false
}

func (g *GameState) IsCheckmate(color Color) bool {
	return g.IsInCheck(color) && !g.hasLegalMoves(color)
}

func (g *GameState) IsStalemate(color Color) bool {
	return !g.IsInCheck(color) && !g.hasLegalMoves(color)
}

// ApplyMove plays the piece on from to to. A pawn reaching the last rank
// leaves the turn open and returns PromotionPending; CompletePromotion must
// follow. Rejected moves leave the state untouched.
func (g *GameState) ApplyMove(from, to Square) (ApplyStatus, error) {
	if !from.onBoard() {
		return "", fmt.Errorf("%w: %s", ErrInvalidSquare, from)
	}
	if !to.onBoard() {
		return "", fmt.Errorf("%w: %s", ErrInvalidSquare, to)
	}
	if g.result.Status != InProgress {
		return "", ErrGameAlreadyOver
	}
	if g.pending != nil {
		return "", fmt.Errorf("%w: pawn on %s", ErrPromotionChoiceRequired, g.pending.To)
	}
	p := g.board.PieceAt(from)
	if p == nil {
		return "", fmt.Errorf("%w: %s", ErrNoPieceAtSquare, from)
	}
	if p.Color != g.toMove {
		return "", fmt.Errorf("%w: %s to move", ErrNotCurrentPlayersPiece, g.toMove)
	}
	if !containsSquare(g.legalMoves(p), to) {
		return "", fmt.Errorf("%w: %s %s to %s", ErrIllegalDestination, p.Type, from, to)
	}

	move := g.describeMove(p, from, to)
	g.execute(p, move)
	if move.Tag == TagPromotion {
		g.pending = &move
		return PromotionPending, nil
	}
	g.completeTurn(move)
	return MoveCompleted, nil
}

// CompletePromotion replaces the pending pawn on sq with a new piece of kind
// and finishes the turn.
func (g *GameState) CompletePromotion(sq Square, kind PieceType) error {
	if g.result.Status != InProgress {
		return ErrGameAlreadyOver
	}
	if g.pending == nil || g.pending.To != sq {
		return fmt.Errorf("%w on %s", ErrNoPromotionPending, sq)
	}
	if !kind.canPromoteTo() {
		return fmt.Errorf("%w: %q", ErrInvalidPromotionKind, kind)
	}
	pawn := g.board.PieceAt(sq)
	promoted := &Piece{
		ID:    g.newID(),
		Type:  kind,
		Color: pawn.Color,
		Moves: append([]Square(nil), pawn.Moves...),
	}
	g.board.Set(sq, promoted)

	move := *g.pending
	move.Promotion = kind
	g.pending = nil
	g.completeTurn(move)
	return nil
}

// Play runs ApplyMove and, when the move promotes, CompletePromotion with
// kind. The kind is validated first so a bad choice changes nothing. It is
// ignored for moves that do not promote.
func (g *GameState) Play(from, to Square, kind PieceType) (ApplyStatus, error) {
	if kind != "" && !kind.canPromoteTo() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPromotionKind, kind)
	}
	status, err := g.ApplyMove(from, to)
	if err != nil || status != PromotionPending || kind == "" {
		return status, err
	}
	if err := g.CompletePromotion(to, kind); err != nil {
		return status, err
	}
	return MoveCompleted, nil
}

func (g *GameState) describeMove(p *Piece, from, to Square) Move {
	move := Move{
		From:  from,
		To:    to,
		Piece: p.snapshot(),
		Tag:   TagNormal,
	}
	switch p.Type {
	case Pawn:
		switch {
		case abs(to.Rank-from.Rank) == 2:
			move.Tag = TagDoublePawnPush
		case g.enPassantVictim(p, to) != nil:
			move.Tag = TagEnPassant
		case to.Rank == p.Color.lastRank():
			move.Tag = TagPromotion
		}
	case King:
		for _, side := range castleSides {
			if from.File == 4 && to.File == side.kingTo && abs(to.File-from.File) == 2 {
				move.Tag = side.tag
				move.CastleRookMove = &CastleRookMove{
					From: Square{File: side.rookFrom, Rank: from.Rank},
					To:   Square{File: side.rookTo, Rank: from.Rank},
				}
			}
		}
	}
	if victim := g.board.PieceAt(move.captureSquare()); victim != nil && victim != p {
		move.Captured = victim.snapshot()
	}
	return move
}

// execute mutates the board for a validated move. The en passant target from
// the previous half-move is dropped before anything else.
func (g *GameState) execute(p *Piece, move Move) {
	g.enPassant = nil
	b := g.board

	if move.Captured != nil {
		at := move.captureSquare()
		victim := b.PieceAt(at)
		b.Set(at, nil)
		g.captured[victim.Color] = append(g.captured[victim.Color], victim)
		if victim.Type == Rook && at.Rank == victim.Color.homeRank() {
			g.castling[victim.Color].loseRook(at.File)
		}
	}

	b.move(move.From, move.To)
	p.Moves = append(p.Moves, move.To)

	if rm := move.CastleRookMove; rm != nil {
		rook := b.PieceAt(rm.From)
		b.move(rm.From, rm.To)
		rook.Moves = append(rook.Moves, rm.To)
	}

	rights := g.castling[p.Color]
	switch p.Type {
	case King:
		rights.KingMoved = true
	case Rook:
		if move.From.Rank == p.Color.homeRank() {
			rights.loseRook(move.From.File)
		}
	}

	if move.Tag == TagDoublePawnPush {
		skipped := Square{File: move.From.File, Rank: move.From.Rank + p.Color.forward()}
		g.enPassant = &skipped
	}
}

// completeTurn records the move and decides whether the opponent can reply.
func (g *GameState) completeTurn(move Move) {
	g.history = append(g.history, move)
	mover := move.Piece.Color
	opp := mover.Opponent()
	if !g.hasLegalMoves(opp) {
		if g.IsInCheck(opp) {
			g.result = Result{Status: Checkmate, Winner: mover}
		} else {
			g.result = Result{Status: Stalemate}
		}
		return
	}
	g.toMove = opp
}
