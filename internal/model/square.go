package model

import (
	"fmt"
	"slices"
)

// Square is a board coordinate. File 0 is the a-file and rank 0 is the first rank.
type Square struct {
	File int
	Rank int
}

func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	sq := Square{File: int(name[0] - 'a'), Rank: int(name[1] - '1')}
	if !sq.onBoard() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return sq, nil
}

// MustSquare is ParseSquare for names known at compile time.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) String() string {
	if !s.onBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.File+'a', s.Rank+1)
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

func (s Square) onBoard() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) offset(d direction) Square {
	return Square{File: s.File + d.df, Rank: s.Rank + d.dr}
}

func sortSquares(squares []Square) {
	slices.SortFunc(squares, func(a, b Square) int {
		if a.File != b.File {
			return a.File - b.File
		}
		return a.Rank - b.Rank
	})
}
