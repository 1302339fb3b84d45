// Package view renders the HTML pages served next to the JSON API.
//
// Templates are embedded at build time and parsed once at startup.
package view

import (
	"embed"

	"github.com/osteele/liquid"
	"github.com/pkg/errors"
)

//go:embed templates/*.liquid
var templates embed.FS

// Renderer parses the embedded templates and renders them with
// per-request bindings.
type Renderer struct {
	engine *liquid.Engine
	home   *liquid.Template
}

func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()

	source, err := templates.ReadFile("templates/home.liquid")
	if err != nil {
		return nil, errors.Wrap(err, "reading home template")
	}

	home, err := engine.ParseTemplate(source)
	if err != nil {
		return nil, errors.Wrap(err, "parsing home template")
	}

	return &Renderer{
		engine: engine,
		home:   home,
	}, nil
}

// Home renders the landing page.
func (r *Renderer) Home(bindings map[string]any) (string, error) {
	out, err := r.home.RenderString(bindings)
	if err != nil {
		return "", errors.Wrap(err, "rendering home template")
	}
	return out, nil
}
