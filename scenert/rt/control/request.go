package control

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mattn/go-shellwords"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrNoFreeSlot     = errors.New("all point light slots are in use")
	ErrSlotFree       = errors.New("point light slot is not in use")
)

// Request is one operator instruction. Either Line is set, holding a
// shell-quoted command, or Op and Args are.
type Request struct {
	Op   string   `json:"op,omitempty"`
	Args []string `json:"args,omitempty"`
	Line string   `json:"line,omitempty"`
}

type Response struct {
	OK     bool   `json:"ok"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ParseRequest splits a command line into a Request. Blank lines yield
// a Request with an empty Op.
func ParseRequest(line string) (Request, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(words) == 0 {
		return Request{}, nil
	}
	return Request{Op: words[0], Args: words[1:]}, nil
}

func (r Request) normalize() (Request, error) {
	if r.Line == "" {
		return r, nil
	}
	return ParseRequest(r.Line)
}

func parseFloats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(args []string) (mgl32.Vec3, error) {
	if len(args) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: expected x y z", ErrUsage)
	}
	f, err := parseFloats(args)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

func parseIndex(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrUsage, what, s)
	}
	return n, nil
}
