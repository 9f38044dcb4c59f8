package engine

// Limits carries the time-control arguments of a UCI "go" command.
type Limits struct {
	Depth     int
	MoveTime  int64 // ms, explicit per-move budget
	Nodes     int64
	WhiteTime int64
	BlackTime int64
	WhiteInc  int64
	BlackInc  int64
	MovesToGo int
	Infinite  bool
	Ponder    bool
}

// TimeHandler derives the per-move budget from the game clock. The
// derivation is deliberately simple: a slice of the remaining time plus
// the increment, with an overhead reserve and a panic mode (nine tenths
// of the increment alone) when less than a second remains.
type TimeHandler struct {
	overheadMs int
}

func NewTimeHandler(overheadMs int) TimeHandler {
	return TimeHandler{overheadMs: overheadMs}
}

// MoveTimeMs returns the millisecond budget for this move, or -1 for an
// unlimited search.
func (th TimeHandler) MoveTimeMs(limits Limits, whiteToMove bool) int64 {
	if limits.Infinite {
		return -1
	}
	if limits.MoveTime > 0 {
		return limits.MoveTime
	}

	remaining := limits.WhiteTime
	increment := limits.WhiteInc
	if !whiteToMove {
		remaining = limits.BlackTime
		increment = limits.BlackInc
	}
	if remaining <= 0 && increment <= 0 {
		return -1
	}

	movesLeft := int64(40)
	if limits.MovesToGo > 0 {
		movesLeft = int64(Min(limits.MovesToGo, 40))
	}

	var moveTime int64
	if increment > 0 {
		if remaining < 1000 {
			// panic: live off the increment
			moveTime = increment * 9 / 10
		} else {
			moveTime = remaining/movesLeft + increment
		}
	} else {
		moveTime = remaining / movesLeft
	}

	if ceiling := remaining * 7 / 10; moveTime > ceiling {
		moveTime = ceiling
	}
	if moveTime > remaining-int64(th.overheadMs) {
		moveTime = remaining - int64(th.overheadMs)
	}
	if moveTime < 5 {
		moveTime = 5
	}
	return moveTime
}
