package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Board lays out the cards in order, in a grid.
type Board struct {
	app.Compo
	Cards       game.Deck
	OnCardClick func(ctx app.Context, id int)
}

func (b *Board) Render() app.UI {
	cards := make([]app.UI, 0, len(b.Cards))
	for _, c := range b.Cards {
		cards = append(cards, &Card{Card: c, OnClick: b.OnCardClick})
	}
	return app.Div().
		Class("board").
		Style("grid-template-columns", fmt.Sprintf("repeat(%d, 1fr)", boardColumns(len(b.Cards)))).
		Body(cards...)
}

// boardColumns picks the number of columns for n cards: the largest divisor
// of n not above its square root, widened to at least 4 when n allows it.
func boardColumns(n int) int {
	if n <= 4 {
		return max(n, 1)
	}
	rows := 1
	for r := 2; r*r <= n; r++ {
		if n%r == 0 {
			rows = r
		}
	}
	cols := n / rows
	if cols < 4 {
		return 4
	}
	return cols
}
