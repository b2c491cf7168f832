package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Memory is the game page: level selector, stats, board and the
// end-of-round overlay. The game state itself lives in State.Controller.
type Memory struct {
	app.Compo
	onUpdate func()
}

func (m *Memory) OnAppUpdate(ctx app.Context) {
	klog.Infof("Memory component: App update available, reloading...")
	ctx.Reload()
}

func (m *Memory) OnMount(ctx app.Context) {
	klog.Infof("Memory component: OnMount called")
	if State.Controller == nil {
		State.StartGame(game.DefaultLevel)
	}
	m.onUpdate = func() {
		// Render reads the controller, dispatching is enough to refresh.
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["memory"] = m.onUpdate
}

func (m *Memory) OnDismount() {
	klog.Infof("Memory component: OnDismount called")
	delete(State.Listeners, "memory")
	State.StopGame()
}

func (m *Memory) OnNav(ctx app.Context) {
	if app.IsServer {
		return
	}
	key := app.Window().URL().Query().Get("level")
	klog.V(1).Infof("Memory component: OnNav called, level=%q", key)
	if key == "" {
		return
	}
	level, ok := game.LevelByKey(key)
	if !ok {
		klog.Warningf("Memory component: unknown level %q, keeping %s", key, game.DefaultLevel.Key)
		return
	}
	if State.Controller == nil {
		State.StartGame(level)
	} else if State.Controller.Snapshot().Level != level {
		State.Controller.SetLevel(level)
	}
}

func (m *Memory) onCardClick(ctx app.Context, id int) {
	if State.Controller != nil {
		State.Controller.Click(id)
	}
}

func (m *Memory) onLevelChange(ctx app.Context, e app.Event) {
	key := ctx.JSSrc().Get("value").String()
	level, ok := game.LevelByKey(key)
	if !ok {
		klog.Warningf("onLevelChange: unknown level %q", key)
		return
	}
	if State.Controller != nil {
		State.Controller.SetLevel(level)
	}
}

func (m *Memory) onRestart(ctx app.Context, e app.Event) {
	if State.Controller != nil {
		State.Controller.Restart()
	}
}

func (m *Memory) renderControls(s game.Snapshot) app.UI {
	var options []app.UI
	for _, l := range game.Levels {
		options = append(options, app.Option().
			Value(l.Key).
			Selected(l.Key == s.Level.Key).
			Text(l.Name))
	}
	return app.Div().Class("controls").Body(
		app.Label().For("level").Text("Difficulty:"),
		app.Select().ID("level").OnChange(m.onLevelChange).Body(options...),
		app.Button().Text("Restart").OnClick(m.onRestart),
	)
}

func (m *Memory) renderStats(s game.Snapshot) app.UI {
	return app.Div().Class("stats").Body(
		app.P().Text(fmt.Sprintf("Moves: %d", s.Moves)),
		app.P().Text(fmt.Sprintf("Time: %ds", s.Remaining)),
		app.P().Text(fmt.Sprintf("Pairs: %d/%d", s.Cards.FoundPairs(), s.Level.Pairs)),
	)
}

// renderOverlay returns the end-of-round dialog, or an empty node while the
// round is still being played.
func (m *Memory) renderOverlay(s game.Snapshot) app.UI {
	var body []app.UI
	switch {
	case s.Won():
		body = []app.UI{
			app.Header().Body(app.H2().Text("Level cleared!")),
			app.P().Text(fmt.Sprintf("Moves: %d", s.Moves)),
			app.P().Text(fmt.Sprintf("Time left: %ds", s.Remaining)),
			app.Footer().Body(app.Button().Text("Play again").OnClick(m.onRestart)),
		}
	case s.Lost():
		body = []app.UI{
			app.Header().Body(app.H2().Text("Time's up!")),
			app.P().Text(fmt.Sprintf("You found %d of %d pairs in %d moves.", s.Cards.FoundPairs(), s.Level.Pairs, s.Moves)),
			app.Footer().Body(app.Button().Text("Try again").OnClick(m.onRestart)),
		}
	default:
		return app.Text("")
	}
	return app.Dialog().Open(true).Class("game-over").Body(
		app.Article().Body(body...),
	)
}

func (m *Memory) Render() app.UI {
	if State.Controller == nil {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Dealing cards..."),
		)
	}
	s := State.Controller.Snapshot()

	return app.Main().Class("container").Body(
		&TopBar{},
		app.H1().Text("Memory Game"),
		m.renderStats(s),
		m.renderControls(s),
		&Board{Cards: s.Cards, OnCardClick: m.onCardClick},
		m.renderOverlay(s),
	)
}
