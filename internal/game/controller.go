package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// CuePlayer plays sound cues. Implementations must not block.
type CuePlayer interface {
	Play(cue Cue)
}

// Snapshot is a copy of the controller state, safe to render.
type Snapshot struct {
	RoundID   uuid.UUID
	Level     Level
	Cards     Deck
	Moves     int
	Remaining int
	Phase     Phase
}

// Won reports whether the round was won.
func (s Snapshot) Won() bool { return s.Phase == PhaseWon }

// Lost reports whether the clock ran out.
func (s Snapshot) Lost() bool { return s.Phase == PhaseLost }

// TimerActive reports whether the countdown is running.
func (s Snapshot) TimerActive() bool { return s.Phase.Clocked() }

// Controller owns the current Round and drives its timers: the countdown
// clock and the delayed revert of a non-matching pair.
//
// All transitions are serialized by an internal lock, so clicks, ticks and
// reverts never overlap. Sound cues and the change callback are invoked
// without holding the lock.
type Controller struct {
	mu     sync.Mutex
	rng    *rand.Rand
	round  *Round
	closed bool

	clockStop chan struct{} // Non-nil while the clock goroutine runs.
	revert    *time.Timer

	cues     CuePlayer
	onChange func()
}

// NewController deals a first round at the given level. rng, cues and
// onChange may be nil.
func NewController(level Level, rng *rand.Rand, cues CuePlayer, onChange func()) *Controller {
	c := &Controller{
		rng:      rng,
		cues:     cues,
		onChange: onChange,
	}
	c.round = NewRound(level, rng)
	klog.V(1).Infof("Controller: new round %s at level %s", c.round.ID, level.Key)
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.round
	return Snapshot{
		RoundID:   r.ID,
		Level:     r.Level,
		Cards:     r.Deck.Clone(),
		Moves:     r.Moves,
		Remaining: r.Remaining,
		Phase:     r.phase,
	}
}

// Click handles a click on the card with the given id.
func (c *Controller) Click(id int) {
	c.fire(func(r *Round) Outcome { return r.Click(id) })
}

// SetLevel discards the current round and deals a new one at level.
func (c *Controller) SetLevel(level Level) {
	c.reset(level)
}

// Restart deals a new round at the current level.
func (c *Controller) Restart() {
	c.mu.Lock()
	level := c.round.Level
	c.mu.Unlock()
	c.reset(level)
}

// Close stops all timers. Further calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimersLocked()
}

func (c *Controller) reset(level Level) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopTimersLocked()
	c.round = NewRound(level, c.rng)
	klog.Infof("Controller: new round %s at level %s (%d pairs, %ds)", c.round.ID, level.Key, level.Pairs, level.Seconds)
	c.mu.Unlock()
	c.emit(Outcome{Changed: true})
}

// fire runs a transition on the current round under the lock, applies the
// timer side effects and then emits cues and the change notification.
func (c *Controller) fire(transition func(r *Round) Outcome) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	out := transition(c.round)
	c.applyLocked(out)
	if out.Changed && c.round.phase.Over() {
		klog.Infof("Controller: round %s %s after %d moves, %ds left",
			c.round.ID, c.round.phase, c.round.Moves, c.round.Remaining)
	}
	c.mu.Unlock()
	c.emit(out)
}

func (c *Controller) applyLocked(out Outcome) {
	id := c.round.ID
	if out.StartClock && c.clockStop == nil {
		c.clockStop = make(chan struct{})
		go c.clockLoop(id, c.clockStop)
	}
	if out.StopClock {
		c.stopClockLocked()
	}
	if out.RevertAfter > 0 {
		if c.revert != nil {
			c.revert.Stop()
		}
		c.revert = time.AfterFunc(out.RevertAfter, func() {
			c.fire(func(r *Round) Outcome { return r.Revert(id) })
		})
	}
}

func (c *Controller) clockLoop(id uuid.UUID, stop chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.fire(func(r *Round) Outcome { return r.Tick(id) })
		}
	}
}

func (c *Controller) stopClockLocked() {
	if c.clockStop != nil {
		close(c.clockStop)
		c.clockStop = nil
	}
}

func (c *Controller) stopTimersLocked() {
	c.stopClockLocked()
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

func (c *Controller) emit(out Outcome) {
	if c.cues != nil {
		for _, cue := range out.Cues {
			c.cues.Play(cue)
		}
	}
	if out.Changed && c.onChange != nil {
		c.onChange()
	}
}
