package sced

import (
	"fmt"
)

// RendererTag marks that a renderer has been installed into the App.
type RendererTag struct {
	Name    string
	Version string
}

// ensureSingleRenderer records name as the App's renderer. Installing a
// second, different renderer panics.
func ensureSingleRenderer(app *App, name string) *RendererTag {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("multiple renderers installed: %s and %s", tag.Name, name))
		}
		return tag
	}
	tag := &RendererTag{Name: name}
	app.addResources(tag)
	return tag
}
