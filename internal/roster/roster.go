// Package roster turns configured players into the (identifier, rating)
// list the scheduler core consumes, rejecting entries the core cannot
// schedule.
package roster

import (
	"errors"
	"fmt"

	"github.com/klstad/rondo/internal/config"
)

// Input problems detected before any schedule generation is attempted.
var (
	ErrTooFewPlayers     = errors.New("at least 4 players are required")
	ErrNonPositiveRating = errors.New("rating must be positive")
	ErrDuplicatePlayer   = errors.New("duplicate player name")
)

// Player is a competitor entered into one scheduling run. IDs are
// assigned 1..n in roster order and stay stable for the whole run.
type Player struct {
	ID     int
	Name   string
	Rating float64
}

// Roster is the immutable player list for one scheduling run.
type Roster struct {
	players []Player
	byName  map[string]int // name -> ID
}

// FromConfig builds a roster from configured players.
func FromConfig(cfg *config.Config) (*Roster, error) {
	return New(cfg.Players)
}

// New validates the entries and assigns IDs 1..n in order.
func New(entries []config.Player) (*Roster, error) {
	if len(entries) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, len(entries))
	}

	r := &Roster{
		players: make([]Player, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Rating <= 0 {
			return nil, fmt.Errorf("%w: %s has rating %v", ErrNonPositiveRating, e.Name, e.Rating)
		}
		if _, ok := r.byName[e.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, e.Name)
		}
		id := i + 1
		r.players = append(r.players, Player{ID: id, Name: e.Name, Rating: e.Rating})
		r.byName[e.Name] = id
	}

	return r, nil
}

// Size returns the player count n.
func (r *Roster) Size() int {
	return len(r.players)
}

// Players returns the players in ID order.
func (r *Roster) Players() []Player {
	return r.players
}

// Ratings returns ratings indexed by player ID. Index 0 is unused.
func (r *Roster) Ratings() []float64 {
	ratings := make([]float64, len(r.players)+1)
	for _, p := range r.players {
		ratings[p.ID] = p.Rating
	}
	return ratings
}

// Name returns the player name for an ID, or "" for an unknown ID.
func (r *Roster) Name(id int) string {
	if id < 1 || id > len(r.players) {
		return ""
	}
	return r.players[id-1].Name
}

// ID returns the player ID for a name. The second result is false for
// names not on the roster.
func (r *Roster) ID(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}
