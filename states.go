package sced

import "strconv"

const (
	StateLoading State = iota
	StateRunning
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateExiting:
		return "exiting"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}
