package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const BoardSize = 3

var (
	MainDiagonal = [3]int{0, 4, 8}
	AntiDiagonal = [3]int{2, 4, 6}
)

type Board struct {
	Cells    [BoardSize * BoardSize]Cell
	finished bool
}

func NewBoard() *Board {
	return &Board{}
}

// Apply places mark at (column, row) and reports whether the move ended the game.
// A rejected move leaves the board untouched.
func (that *Board) Apply(mark Mark, column, row int) (Outcome, error) {
	if that.finished {
		return Ongoing, apperror.ErrGameFinished
	}

	if column < 0 || column >= BoardSize || row < 0 || row >= BoardSize {
		return Ongoing, fmt.Errorf("%w: column %d, row %d", apperror.ErrOutOfBounds, column, row)
	}

	index := column + BoardSize*row
	if that.Cells[index] != EmptyCell {
		return Ongoing, apperror.ErrCellOccupied
	}

	that.Cells[index] = mark.Cell()

	outcome := that.evaluate(mark, column, row)
	if outcome.Finished {
		that.finished = true
	}

	return outcome, nil
}

// evaluate checks the lines through the last move; first match wins.
func (that *Board) evaluate(mark Mark, column, row int) Outcome {
	lines := [][3]int{
		{column, column + BoardSize, column + 2*BoardSize},
		{BoardSize * row, BoardSize*row + 1, BoardSize*row + 2},
		MainDiagonal,
		AntiDiagonal,
	}

	cell := mark.Cell()
	for _, line := range lines {
		if that.Cells[line[0]] == cell && that.Cells[line[1]] == cell && that.Cells[line[2]] == cell {
			return Finished(ResultFromMark(mark))
		}
	}

	// the game will continue until all the squares are full
	if that.IsFull() {
		return Finished(ResultDraw)
	}

	return Ongoing
}

func (that *Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) IsFinished() bool {
	return that.finished
}

// Cell returns the content at (column, row). Coordinates must be in range.
func (that *Board) Cell(column, row int) Cell {
	return that.Cells[column+BoardSize*row]
}

// Snapshot - returns the board as the "X", "O", "" strings used on the wire.
func (that *Board) Snapshot() [BoardSize * BoardSize]string {
	var snapshot [BoardSize * BoardSize]string
	for i, cell := range that.Cells {
		if cell != EmptyCell {
			snapshot[i] = cell.String()
		}
	}

	return snapshot
}

func (that *Board) String() string {
	c := that.Cells
	return fmt.Sprintf("%s|%s|%s\n-+-+-\n%s|%s|%s\n-+-+-\n%s|%s|%s\n",
		c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7], c[8])
}
