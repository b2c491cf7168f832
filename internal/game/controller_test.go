package game

import (
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"testing/synctest"
	"time"
)

// recorder collects cues and change notifications.
type recorder struct {
	mu      sync.Mutex
	cues    []Cue
	changes int
}

func (r *recorder) Play(cue Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
}

func (r *recorder) changed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes++
}

func (r *recorder) played() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cues)
}

func newTestController(level Level) (*Controller, *recorder) {
	rec := &recorder{}
	c := NewController(level, rand.New(rand.NewPCG(9, 9)), rec, rec.changed)
	return c, rec
}

func flipped(s Snapshot, id int) bool {
	return s.Cards[s.Cards.Index(id)].Flipped
}

func TestControllerRevertsMismatchAfterDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newTestController(Easy)
		defer c.Close()

		cards := c.Snapshot().Cards
		a, _ := pairOf(cards, 1)
		b, _ := pairOf(cards, 2)
		c.Click(a)
		c.Click(b)

		s := c.Snapshot()
		if s.Moves != 1 || s.Phase != PhaseResolving {
			t.Fatalf("Expected 1 move while resolving, got %d moves in phase %s", s.Moves, s.Phase)
		}

		time.Sleep(RevealDelay - 10*time.Millisecond)
		synctest.Wait()
		s = c.Snapshot()
		if !flipped(s, a) || !flipped(s, b) {
			t.Fatalf("Cards turned back before the reveal delay")
		}
		other, _ := pairOf(cards, 3)
		c.Click(other)
		if flipped(c.Snapshot(), other) {
			t.Errorf("Click during the reveal delay should be ignored")
		}

		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		s = c.Snapshot()
		if flipped(s, a) || flipped(s, b) {
			t.Errorf("Cards should be face down after the reveal delay")
		}
		if s.Phase != PhaseRunning || s.Moves != 1 {
			t.Errorf("Expected running with 1 move, got %s with %d", s.Phase, s.Moves)
		}
	})
}

func TestControllerClockRunsOut(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newTestController(Easy)
		defer c.Close()

		time.Sleep(5 * time.Second)
		synctest.Wait()
		if s := c.Snapshot(); s.Remaining != 60 || s.TimerActive() {
			t.Fatalf("Clock should not run before the first click, remaining %d", s.Remaining)
		}

		a, _ := pairOf(c.Snapshot().Cards, 1)
		c.Click(a)
		time.Sleep(10*time.Second + 500*time.Millisecond)
		synctest.Wait()
		if s := c.Snapshot(); s.Remaining != 50 {
			t.Fatalf("Remaining = %d after 10s, expected 50", s.Remaining)
		}

		time.Sleep(49 * time.Second)
		synctest.Wait()
		if s := c.Snapshot(); s.Remaining != 1 || s.Lost() {
			t.Fatalf("Expected 1s left and not lost, got %ds, phase %s", s.Remaining, s.Phase)
		}

		time.Sleep(time.Second)
		synctest.Wait()
		s := c.Snapshot()
		if !s.Lost() || s.Remaining != 0 || s.TimerActive() {
			t.Fatalf("Expected lost at 0s, got %s at %ds", s.Phase, s.Remaining)
		}
		if cues := rec.played(); cues[len(cues)-1] != CueLose {
			t.Errorf("Last cue = %s, expected lose", cues[len(cues)-1])
		}

		b, _ := pairOf(s.Cards, 2)
		c.Click(b)
		if flipped(c.Snapshot(), b) {
			t.Errorf("Clicks after losing should be ignored")
		}

		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := c.Snapshot().Remaining; got != 0 {
			t.Errorf("Remaining changed after the round ended: %d", got)
		}
	})
}

func TestControllerWinStopsClock(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newTestController(Easy)
		defer c.Close()

		cards := c.Snapshot().Cards
		for pairID := 1; pairID <= Easy.Pairs; pairID++ {
			a, b := pairOf(cards, pairID)
			c.Click(a)
			time.Sleep(1300 * time.Millisecond)
			c.Click(b)
		}
		synctest.Wait()
		s := c.Snapshot()
		if !s.Won() || s.TimerActive() {
			t.Fatalf("Expected won with the clock stopped, got %s", s.Phase)
		}
		if s.Moves != 4 || s.Remaining != 55 {
			t.Errorf("Expected 4 moves and 55s left, got %d moves and %ds", s.Moves, s.Remaining)
		}

		time.Sleep(30 * time.Second)
		synctest.Wait()
		if got := c.Snapshot().Remaining; got != 55 {
			t.Errorf("Clock kept running after the win: %ds", got)
		}
		cues := rec.played()
		if cues[len(cues)-1] != CueWin {
			t.Errorf("Last cue = %s, expected win", cues[len(cues)-1])
		}
	})
}

func TestControllerRestartDiscardsPendingRevert(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newTestController(Easy)
		defer c.Close()

		cards := c.Snapshot().Cards
		a, _ := pairOf(cards, 1)
		b, _ := pairOf(cards, 2)
		c.Click(a)
		time.Sleep(3 * time.Second)
		c.Click(b)

		c.Restart()
		s := c.Snapshot()
		if s.Moves != 0 || s.Remaining != Easy.Seconds || s.Phase != PhaseIdle {
			t.Fatalf("Restart should reset the round, got %d moves, %ds, %s", s.Moves, s.Remaining, s.Phase)
		}

		// Flip a card of the new round; the old revert must not touch it.
		first := s.Cards[0].ID
		c.Click(first)
		rec.mu.Lock()
		changesBefore := rec.changes
		rec.mu.Unlock()
		time.Sleep(RevealDelay + 500*time.Millisecond)
		synctest.Wait()
		s = c.Snapshot()
		if !flipped(s, first) {
			t.Errorf("Stale revert turned a card of the new round face down")
		}
		if s.Remaining != Easy.Seconds-1 {
			t.Errorf("Remaining = %d, expected %d: stale clock still ticking?", s.Remaining, Easy.Seconds-1)
		}
		rec.mu.Lock()
		if rec.changes != changesBefore+1 {
			t.Errorf("Expected exactly one change (a tick), got %d", rec.changes-changesBefore)
		}
		rec.mu.Unlock()
	})
}

func TestControllerSetLevel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newTestController(Easy)
		defer c.Close()

		c.Click(c.Snapshot().Cards[0].ID)
		time.Sleep(5 * time.Second)
		synctest.Wait()

		c.SetLevel(Hard)
		s := c.Snapshot()
		if s.Level != Hard || len(s.Cards) != 20 || s.Remaining != 180 || s.Moves != 0 || s.TimerActive() {
			t.Fatalf("Unexpected state after SetLevel(Hard): %s, %d cards, %ds, %d moves, %s",
				s.Level.Key, len(s.Cards), s.Remaining, s.Moves, s.Phase)
		}

		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := c.Snapshot().Remaining; got != 180 {
			t.Errorf("Old clock still ticking after level change: %ds", got)
		}
	})
}

func TestControllerClosed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newTestController(Easy)
		a := c.Snapshot().Cards[0].ID
		c.Click(a)
		c.Close()

		time.Sleep(3 * time.Second)
		synctest.Wait()
		if got := c.Snapshot().Remaining; got != 60 {
			t.Errorf("Clock ticked after Close: %ds", got)
		}
		c.Click(c.Snapshot().Cards[1].ID)
		c.Restart()
		if got := rec.played(); !slices.Equal(got, []Cue{CueFlip}) {
			t.Errorf("Cues after Close: %v", got)
		}
	})
}
