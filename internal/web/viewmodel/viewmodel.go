// Package viewmodel holds the data the web pages render.
package viewmodel

import (
	"net/url"

	"snowfall/internal/core"
)

// ParamRow is one labelled parameter value.
type ParamRow struct {
	Label string
	Value string
}

// ParamGroup is a titled block of parameter rows.
type ParamGroup struct {
	Name string
	Rows []ParamRow
}

// SceneCard summarises one registered scene on the index page.
type SceneCard struct {
	Name       string
	PlayerURL  string
	PreviewURL string
	Groups     []ParamGroup
}

// IndexPage lists every scene.
type IndexPage struct {
	Title  string
	Scenes []SceneCard
}

// PlayerPage hosts one scene in the browser.
type PlayerPage struct {
	Title string
	Scene string
}

// NewSceneCard builds the card for name from its parameter snapshot.
func NewSceneCard(name string, snap core.ParameterSnapshot) SceneCard {
	escaped := url.PathEscape(name)
	card := SceneCard{
		Name:       name,
		PlayerURL:  "/scene/" + escaped,
		PreviewURL: "/preview/" + escaped + ".png",
	}
	for _, g := range snap.Groups {
		group := ParamGroup{Name: g.Name}
		for _, p := range g.Params {
			group.Rows = append(group.Rows, ParamRow{Label: p.Label, Value: p.Value})
		}
		card.Groups = append(card.Groups, group)
	}
	return card
}

// NewPlayerPage builds the player page for scene.
func NewPlayerPage(scene string) PlayerPage {
	return PlayerPage{Title: "Snowfall: " + scene, Scene: scene}
}
