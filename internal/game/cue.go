package game

import "fmt"

// Cue is a sound played on a game transition.
type Cue int

const (
	CueFlip  Cue = iota // A card was turned face up.
	CueMatch            // A pair was found.
	CueWin              // The last pair was found.
	CueLose             // The clock ran out.
)

var cueNames = [...]string{"flip", "match", "win", "lose"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}

// Asset returns the URL of the sound file of the cue. Each cue plays the
// file carrying its own name.
func (c Cue) Asset() string {
	return fmt.Sprintf("/web/sounds/%s.mpeg", c)
}

// Cues lists all cues, in declaration order.
var Cues = []Cue{CueFlip, CueMatch, CueWin, CueLose}
