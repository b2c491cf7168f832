package game

import "time"

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"

// RevealDelay is how long a non-matching pair stays face up before it is
// turned back down. Clicks are ignored during this window.
var RevealDelay = 1000 * time.Millisecond

// TickInterval is the period of the countdown clock.
var TickInterval = time.Second
