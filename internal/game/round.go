package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Phase of a Round.
type Phase int

const (
	PhaseIdle      Phase = iota // Dealt; the clock has not started.
	PhaseRunning                // Clock running, accepting clicks.
	PhaseResolving              // A non-matching pair is face up, waiting to be turned back.
	PhaseWon                    // Every pair found.
	PhaseLost                   // Clock ran out first.
)

var phaseNames = [...]string{"idle", "running", "resolving", "won", "lost"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Over reports whether p is terminal.
func (p Phase) Over() bool { return p == PhaseWon || p == PhaseLost }

// Clocked reports whether the countdown runs during p.
func (p Phase) Clocked() bool { return p == PhaseRunning || p == PhaseResolving }

// Outcome tells the host of a Round what a transition requires from it.
// The zero value means nothing happened.
type Outcome struct {
	Changed    bool
	StartClock bool
	StopClock  bool

	// RevertAfter, if > 0, asks the host to call Round.Revert with the
	// round ID after this delay.
	RevertAfter time.Duration

	Cues []Cue
}

// Round holds the state of one play session at a given level, from the deal
// until it is won or lost. It does no timing by itself: Tick and Revert are
// driven by its host (see Controller).
type Round struct {
	ID        uuid.UUID
	Level     Level
	Deck      Deck
	Moves     int
	Remaining int // Seconds.

	phase         Phase
	first, second int // Deck positions of the current selection, -1 if none.
}

// NewRound deals a freshly shuffled deck for the level.
func NewRound(level Level, rng *rand.Rand) *Round {
	return &Round{
		ID:        uuid.New(),
		Level:     level,
		Deck:      GenerateDeck(level.Pairs, rng),
		Remaining: level.Seconds,
		phase:     PhaseIdle,
		first:     -1,
		second:    -1,
	}
}

// Phase returns the current phase.
func (r *Round) Phase() Phase { return r.phase }

// Selection returns the ids of the cards currently selected and not yet
// resolved, in click order.
func (r *Round) Selection() []int {
	var ids []int
	for _, pos := range []int{r.first, r.second} {
		if pos >= 0 {
			ids = append(ids, r.Deck[pos].ID)
		}
	}
	return ids
}

// Click turns the card with the given id face up, if the round accepts it.
//
// Clicks are ignored while a non-matching pair is being shown, once the
// round is over, for unknown ids and for cards already face up or found.
// Since a selected card is face up, a card can't be selected twice.
func (r *Round) Click(id int) (out Outcome) {
	if r.phase == PhaseResolving || r.phase.Over() {
		return
	}
	pos := r.Deck.Index(id)
	if pos < 0 {
		return
	}
	card := &r.Deck[pos]
	if card.Flipped || card.Found {
		return
	}

	if r.phase == PhaseIdle {
		r.phase = PhaseRunning
		out.StartClock = true
	}
	card.Flipped = true
	out.Changed = true
	out.Cues = append(out.Cues, CueFlip)

	if r.first < 0 {
		r.first = pos
		return
	}
	r.second = pos
	r.resolve(&out)
	return
}

// resolve evaluates the two selected cards.
func (r *Round) resolve(out *Outcome) {
	r.Moves++
	a, b := &r.Deck[r.first], &r.Deck[r.second]
	if a.PairID != b.PairID {
		r.phase = PhaseResolving
		out.RevertAfter = RevealDelay
		return
	}
	a.Found, b.Found = true, true
	r.clearSelection()
	out.Cues = append(out.Cues, CueMatch)
	r.checkWon(out)
}

// Revert turns a non-matching pair back face down. It is a no-op unless the
// round with the given id is still showing that pair.
func (r *Round) Revert(id uuid.UUID) (out Outcome) {
	if id != r.ID || r.phase != PhaseResolving {
		return
	}
	r.Deck[r.first].Flipped = false
	r.Deck[r.second].Flipped = false
	r.clearSelection()
	r.phase = PhaseRunning
	out.Changed = true
	return
}

// Tick advances the countdown by one second. It is a no-op unless the round
// with the given id has its clock running.
func (r *Round) Tick(id uuid.UUID) (out Outcome) {
	if id != r.ID || !r.phase.Clocked() {
		return
	}
	out.Changed = true
	if r.Remaining > 1 {
		r.Remaining--
		return
	}
	r.Remaining = 0
	r.phase = PhaseLost
	out.StopClock = true
	out.Cues = append(out.Cues, CueLose)
	return
}

func (r *Round) checkWon(out *Outcome) {
	if !r.Deck.AllFound() {
		return
	}
	r.phase = PhaseWon
	out.StopClock = true
	out.Cues = append(out.Cues, CueWin)
}

func (r *Round) clearSelection() {
	r.first, r.second = -1, -1
}
