package game

// Moves are flat board coordinates in [0, boardSize*boardSize). Pass and
// Resign sit outside that range so they can share the action space with real
// moves.
const (
	Pass   = -1
	Resign = -2
)

const DefaultBoardSize = 9

// MaxActions is the number of candidate moves a position can offer: one per
// intersection plus pass.
func MaxActions(boardSize int) int {
	return boardSize*boardSize + 1
}

// MaxRecords is the move-history capacity for one game. Games longer than
// three times the board area are pathological and stop being recorded.
func MaxRecords(boardSize int) int {
	return boardSize * boardSize * 3
}
