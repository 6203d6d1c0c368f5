package sced

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"
)

type systemFn any

// ErrStopped is returned by Run when a frame or module install panicked.
var ErrStopped = errors.New("session stopped")

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	modules            []Module
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any

	stopRequested atomic.Bool
	err           error
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run drives frames until the final state is reached or, in a stateless
// app, until Stop is called. It returns the first system error, if any.
func (app *App) Run() error {
	app.frame(app.build)
	if app.err != nil {
		return app.err
	}
	log := app.Logger()

	if app.stateful {
		log.Debugf("running in stateful mode")
		app.state = app.initialState
		app.frame(func() { app.callSystems(app.state, enter) })
	} else {
		log.Debugf("running in stateless mode")
	}

	for {
		app.frame(func() { app.callSystems(app.state, execute) })

		if app.stopRequested.Load() {
			if !app.stateful {
				break
			}
			if app.state != app.finalState && (!app.stateTransitioning || app.nextState != app.finalState) {
				app.changeState(app.finalState)
			}
		}

		if app.stateful {
			if app.stateTransitioning {
				app.stateTransitioning = false
				app.frame(func() { app.executeChangeState(app.nextState) })
			}

			if app.state == app.finalState {
				app.frame(func() { app.callSystems(app.state, exit) })
				break
			}
		}
	}
	return app.err
}

// Stop asks the App to leave its loop after the current frame. It is
// safe to call from any goroutine.
func (app *App) Stop() {
	app.stopRequested.Store(true)
}

func (app *App) Stopping() bool {
	return app.stopRequested.Load()
}

// fail records the first error and stops the App.
func (app *App) fail(err error) {
	if app.err == nil {
		app.err = err
	}
	app.Stop()
}

// frame runs fn and turns a panic into a logged stop.
func (app *App) frame(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			app.Logger().Errorf("frame aborted: %v", r)
			app.fail(fmt.Errorf("%w: %v", ErrStopped, r))
		}
	}()
	fn()
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if app.stateful {
			for _, system := range app.systems[stage.Name][state][phase] {
				app.callSystem(system)
			}
		}
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.Logger().Debugf("state %v -> %v", app.state, newState)
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource registered for T, if any.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	v, ok := r.(*T)
	return v, ok
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfError    = reflect.TypeFor[error]()
)

// callSystem resolves the system's pointer arguments from resources and
// calls it. A system may return an error as its only result; a non-nil
// error stops the App.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(fmt.Sprintf("unable to resolve system dependency: system %s (%s) needs %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				systemType,
				argType,
			))
		}
	}

	out := systemValue.Call(args)
	if len(out) == 1 && systemType.Out(0) == typeOfError && !out[0].IsNil() {
		err := out[0].Interface().(error)
		app.Logger().Errorf("%s: %v", runtime.FuncForPC(systemValue.Pointer()).Name(), err)
		app.fail(err)
	}
}
