package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/k2311060/Maple/game"
)

// Local plays a complete game between two agents on one machine, saving every
// real move into the history record. Searches simulate thousands of moves per
// turn; only the moves actually played here reach the record.
type Local struct {
	state  game.State
	record *game.Record
	black  Player
	white  Player
	moves  int
}

func NewLocal(state game.State, record *game.Record, black, white Player) *Local {
	if state == nil {
		panic("engine needs an initial state")
	}
	if black == nil || white == nil {
		panic("engine needs two players")
	}
	return &Local{
		state:  state,
		record: record,
		black:  black,
		white:  white,
	}
}

// Run executes the game loop until the game ends or the record's capacity is
// reached, and returns the per-move search reports.
func (e *Local) Run() ([]MoveReport, error) {
	log.Info().Stringer("player", e.state.Player()).Msg("game started")

	var reports []MoveReport
	for !e.state.Over() && e.moves < e.record.Capacity() {
		color := e.state.Player()
		agent := e.black
		if color == game.White {
			agent = e.white
		}

		result, err := agent.FindMove(e.state)
		if err != nil {
			return reports, fmt.Errorf("find move %d: %w", e.moves, err)
		}
		pos := result.BestMove

		e.state = e.state.Play(pos)
		hash := e.state.Hash()
		if e.record.HasSameHash(hash) {
			log.Debug().
				Uint64("hash", hash).
				Int("moves", e.moves).
				Msg("position repeats an earlier one")
		}
		if err := e.record.Save(e.moves, color, pos, hash); err != nil {
			log.Warn().Err(err).Int("moves", e.moves).Msg("history entry dropped")
		}

		reports = append(reports, MoveReport{MoveNum: e.moves, Color: color, Result: result})
		e.moves++
	}

	log.Info().Int("moves", e.moves).Msg("game over")
	return reports, nil
}

// Moves is the number of real moves played so far.
func (e *Local) Moves() int {
	return e.moves
}

// Record exposes the game's move history.
func (e *Local) Record() *game.Record {
	return e.record
}
