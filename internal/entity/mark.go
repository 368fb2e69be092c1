package entity

// Cell is the content of a single board position.
type Cell int

const (
	EmptyCell Cell = iota
	CellX
	CellO
)

func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return " "
	}
}

// Mark is the symbol of the player who acts. Unlike Cell it can never be empty.
type Mark int

const (
	MarkX Mark = iota
	MarkO
)

func (that Mark) Cell() Cell {
	if that == MarkO {
		return CellO
	}
	return CellX
}

func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// PlayerName - is the name shown in prompts and result lines.
func (that Mark) PlayerName() string {
	if that == MarkO {
		return "Player 2"
	}
	return "Player 1"
}

func (that Mark) String() string {
	return that.Cell().String()
}

// Result is the winner of a finished game or a draw.
type Result int

const (
	ResultX Result = iota
	ResultO
	ResultDraw
)

func ResultFromMark(mark Mark) Result {
	if mark == MarkO {
		return ResultO
	}
	return ResultX
}

// Mark returns the winning mark, false for a draw.
func (that Result) Mark() (Mark, bool) {
	switch that {
	case ResultX:
		return MarkX, true
	case ResultO:
		return MarkO, true
	default:
		return MarkX, false
	}
}

func (that Result) String() string {
	switch that {
	case ResultX:
		return "X"
	case ResultO:
		return "O"
	default:
		return "-"
	}
}

// Outcome is the state of the game after a turn. The zero value is an ongoing game.
type Outcome struct {
	Finished bool
	Result   Result
}

var Ongoing = Outcome{}

func Finished(result Result) Outcome {
	return Outcome{Finished: true, Result: result}
}

func (that Outcome) String() string {
	if !that.Finished {
		return "In progress game state"
	}

	mark, ok := that.Result.Mark()
	if !ok {
		return "The game was a draw"
	}

	return mark.PlayerName() + " wins!"
}
