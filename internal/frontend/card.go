package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Card renders one card. It keeps no state and forwards every click;
// deciding whether a click counts is up to the controller.
type Card struct {
	app.Compo
	Card    game.Card
	OnClick func(ctx app.Context, id int)
}

func (c *Card) onClick(ctx app.Context, e app.Event) {
	if c.OnClick != nil {
		c.OnClick(ctx, c.Card.ID)
	}
}

func (c *Card) Render() app.UI {
	return app.Div().
		Class(cardClass(c.Card)).
		DataSet("id", c.Card.ID).
		OnClick(c.onClick).
		Body(
			app.Div().Class("card-front").Text("?"),
			app.Div().Class("card-back").Body(
				app.Img().
					Src(c.Card.Image).
					Alt(fmt.Sprintf("Card %d", c.Card.PairID)),
			),
		)
}

// cardClass returns the CSS classes of a card: "flipped" shows its face.
func cardClass(card game.Card) string {
	class := "card"
	if card.Flipped || card.Found {
		class += " flipped"
	}
	if card.Found {
		class += " found"
	}
	return class
}
