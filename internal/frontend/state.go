package frontend

import (
	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState holds the game controller, the sound settings and the
// listeners of state updates.
type GlobalClientState struct {
	Controller *game.Controller

	// Sound state
	SoundEnabled bool
	sounds       map[game.Cue]app.Value // One long-lived <audio> element per cue.
	onPlayError  app.Func

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Listeners:    make(map[string]func()),
			SoundEnabled: true,
			sounds:       make(map[game.Cue]app.Value),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// StartGame creates the controller with a first round at level, closing
// any previous one.
func (s *GlobalClientState) StartGame(level game.Level) {
	if s.Controller != nil {
		s.Controller.Close()
	}
	klog.Infof("StartGame: level %s", level.Key)
	s.Controller = game.NewController(level, nil, s, s.Notify)
}

// StopGame closes the controller: pending ticks and reverts become no-ops.
func (s *GlobalClientState) StopGame() {
	if s.Controller != nil {
		s.Controller.Close()
		s.Controller = nil
	}
}

func (s *GlobalClientState) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
	klog.Infof("ToggleSound: SoundEnabled is now %v", s.SoundEnabled)
	s.Notify()
}

// Play implements game.CuePlayer. Failures to play are logged and otherwise
// ignored.
func (s *GlobalClientState) Play(cue game.Cue) {
	if app.IsServer || !s.SoundEnabled {
		return
	}
	audio := s.audioFor(cue)
	if audio == nil {
		return
	}

	// Rewind, so a cue played twice in a row is heard twice.
	audio.Set("currentTime", 0)
	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("catch", s.onPlayError)
	}
}

// audioFor returns the <audio> element of the cue, creating it on first use.
func (s *GlobalClientState) audioFor(cue game.Cue) app.Value {
	if audio, found := s.sounds[cue]; found {
		return audio
	}
	document := app.Window().Get("document")
	if !document.Truthy() {
		return nil
	}
	if s.onPlayError == nil {
		s.onPlayError = app.FuncOf(func(this app.Value, args []app.Value) any {
			if len(args) > 0 {
				klog.Errorf("Play: failed to play sound: %v", args[0])
			}
			return nil
		})
	}

	klog.V(1).Infof("audioFor: creating audio element for %s (%s)", cue, cue.Asset())
	audio := document.Call("createElement", "audio")
	audio.Set("src", cue.Asset())
	audio.Set("preload", "auto")
	s.sounds[cue] = audio
	return audio
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}
