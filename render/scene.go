// Package render projects the board under the current viewport. Compose builds a
// Scene from the application state; the terminal and raster backends draw it.
package render

import (
	"travellog/board"
	"travellog/connector"
	"travellog/viewport"
)

type NodeKind int

const (
	ConnectorNode NodeKind = iota
	CardNode
	ControlNode
)

// CardView is a card plus the presentational flags it is drawn with. The flags never
// feed back into the card's geometry.
type CardView struct {
	board.Card
	Visible    string
	Selected   bool
	Connecting bool
}

// Typing reports whether the reveal animation is still printing characters.
func (c CardView) Typing() bool {
	return c.Revealing && len([]rune(c.Visible)) < len([]rune(c.Text))
}

type Node struct {
	Kind    NodeKind
	Card    *CardView
	Curve   connector.Curve
	LinkID  string
	Control *Button
}

// Layer is a group of world-space nodes drawn under one shared transform.
type Layer struct {
	Transform viewport.Viewport
	Nodes     []Node
}

type Scene struct {
	Content    Layer
	Controls   []Node
	Connecting bool
}

// Input is everything Compose reads.
type Input struct {
	Viewport   viewport.Viewport
	Board      *board.Board
	Selection  string
	Connecting bool
	// Visible returns the revealed part of a card's text; nil shows it all.
	Visible  func(id, text string) string
	Controls []Button
}

// Compose lays out connectors beneath cards inside the transformed content layer. The
// selected card is emitted last so it draws above the others.
func Compose(in Input) Scene {
	scene := Scene{
		Content:    Layer{Transform: in.Viewport},
		Connecting: in.Connecting,
	}
	if in.Board == nil {
		return scene
	}

	for _, link := range in.Board.Links() {
		curve, ok := connector.Between(in.Board.Card(link.FromID), in.Board.Card(link.ToID))
		if !ok {
			continue
		}
		scene.Content.Nodes = append(scene.Content.Nodes, Node{
			Kind:   ConnectorNode,
			Curve:  curve,
			LinkID: link.ID,
		})
	}

	var selected *Node
	for _, card := range in.Board.Cards() {
		view := &CardView{
			Card:       card,
			Visible:    card.Text,
			Selected:   card.ID == in.Selection,
			Connecting: in.Connecting,
		}
		if in.Visible != nil {
			view.Visible = in.Visible(card.ID, card.Text)
		}
		node := Node{Kind: CardNode, Card: view}
		if view.Selected {
			selected = &node
			continue
		}
		scene.Content.Nodes = append(scene.Content.Nodes, node)
	}
	if selected != nil {
		scene.Content.Nodes = append(scene.Content.Nodes, *selected)
	}

	for i := range in.Controls {
		button := in.Controls[i]
		scene.Controls = append(scene.Controls, Node{Kind: ControlNode, Control: &button})
	}
	return scene
}

// Cards returns the card nodes of the content layer in draw order.
func (s Scene) Cards() []*CardView {
	var cards []*CardView
	for _, node := range s.Content.Nodes {
		if node.Kind == CardNode {
			cards = append(cards, node.Card)
		}
	}
	return cards
}

func (s Scene) Connectors() []connector.Curve {
	var curves []connector.Curve
	for _, node := range s.Content.Nodes {
		if node.Kind == ConnectorNode {
			curves = append(curves, node.Curve)
		}
	}
	return curves
}
