package sced

import (
	"reflect"
)

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

func NewApp() *App {
	return &App{
		stages:           []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale},
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		resources:        make(map[reflect.Type]any),
	}
}

// UseStates makes the App stateful. States are the integers from
// initial to final inclusive; reaching final ends Run.
func (app *App) UseStates(initialState, finalState State) *App {
	app.stateful = true
	app.initialState = initialState
	app.finalState = finalState
	return app
}

// UseModules queues modules for installation. They are installed in
// order when Run starts, after stages and states are known.
func (app *App) UseModules(modules ...Module) *App {
	app.modules = append(app.modules, modules...)
	return app
}

func (app *App) build() {
	for _, stage := range app.stages {
		if _, ok := app.systemsStateless[stage.Name]; !ok {
			app.initStatefulStage(stage)
		}
	}

	cmd := app.Commands()
	modules := app.modules
	app.modules = nil
	for _, module := range modules {
		module.Install(app, cmd)
	}
}
