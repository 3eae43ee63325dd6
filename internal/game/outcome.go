package game

import (
	"fmt"

	"github.com/tomz197/katchnrun/internal/object"
)

// Reason says why a match ended.
type Reason int

const (
	ReasonTime  Reason = iota // match clock reached zero
	ReasonLives               // a player ran out of lives
)

func (r Reason) String() string {
	if r == ReasonLives {
		return "lives"
	}
	return "time"
}

// Outcome is the decided result of a match. Player indices are zero-based.
type Outcome struct {
	Reason Reason
	Winner int // -1 on a draw
	Loser  int // -1 on a draw
	Draw   bool
	Scores []int
	Lives  []int
}

// Result returns "Winner", "Loser" or "Draw" for the given player.
func (o Outcome) Result(player int) string {
	switch {
	case o.Draw:
		return "Draw"
	case player == o.Winner:
		return "Winner"
	default:
		return "Loser"
	}
}

// Headline is a one-line summary of the result.
func (o Outcome) Headline() string {
	if o.Draw {
		return "It's a draw!"
	}
	return fmt.Sprintf("Player %d wins!", o.Winner+1)
}

// decide computes the outcome. When a player ran out of lives (loser >= 0)
// that player loses. Otherwise the strictly highest score wins and a tie
// for the top score is a draw.
func decide(players []*object.Player, reason Reason, loser int) Outcome {
	o := Outcome{Reason: reason, Winner: -1, Loser: -1}
	for _, p := range players {
		o.Scores = append(o.Scores, p.Score)
		o.Lives = append(o.Lives, p.Lives)
	}
	if len(players) == 0 {
		o.Draw = true
		return o
	}

	if loser >= 0 {
		o.Loser = loser
		best := -1
		for i, p := range players {
			if i == loser {
				continue
			}
			if best < 0 || p.Score > players[best].Score {
				best = i
			}
		}
		o.Winner = best
		return o
	}

	best, tied := 0, false
	for i := 1; i < len(players); i++ {
		switch {
		case players[i].Score > players[best].Score:
			best, tied = i, false
		case players[i].Score == players[best].Score:
			tied = true
		}
	}
	if tied {
		o.Draw = true
		return o
	}
	o.Winner = best
	if len(players) == 2 {
		o.Loser = 1 - best
	}
	return o
}
