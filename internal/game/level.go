package game

// Level is a difficulty preset: how many pairs are dealt and how many
// seconds the player has to find them.
type Level struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Pairs   int    `json:"pairs"`
	Seconds int    `json:"seconds"`
}

var (
	Easy   = Level{Key: "easy", Name: "Easy", Pairs: 4, Seconds: 60}
	Medium = Level{Key: "medium", Name: "Medium", Pairs: 8, Seconds: 120}
	Hard   = Level{Key: "hard", Name: "Hard", Pairs: 10, Seconds: 180}
)

// Levels lists the presets in the order they are offered to the player.
var Levels = []Level{Easy, Medium, Hard}

// DefaultLevel is used when no (valid) level was requested.
var DefaultLevel = Easy

// LevelByKey returns the preset with the given key ("easy", "medium" or "hard").
func LevelByKey(key string) (Level, bool) {
	for _, l := range Levels {
		if l.Key == key {
			return l, true
		}
	}
	return Level{}, false
}
