// Package ui renders the restaurant page. Markup is built with gomponents
// and exposed as templ components so handlers can serve it through
// templ.Handler and compose it with templ code.
package ui

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Templ adapts a gomponents node to the templ.Component interface.
func Templ(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// RenderString renders a component to a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
