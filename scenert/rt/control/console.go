package control

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is what the frontends need from the application logger.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Console reads one command per line and writes each response back.
type Console struct {
	surface *Surface
	in      io.Reader
	out     io.Writer
	Prompt  string
}

func NewConsole(s *Surface, in io.Reader, out io.Writer) *Console {
	return &Console{surface: s, in: in, out: out, Prompt: "sced> "}
}

// Run serves the console until input ends, a quit request is handled,
// or ctx is cancelled. A cancelled ctx returns nil.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(c.out, c.Prompt)
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			req, err := ParseRequest(line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				continue
			}
			if req.Op == "" {
				continue
			}
			c.write(c.surface.Do(req))
			if strings.EqualFold(req.Op, "quit") || strings.EqualFold(req.Op, "exit") {
				return nil
			}
		}
	}
}

func (c *Console) write(r Response) {
	if !r.OK {
		fmt.Fprintf(c.out, "error: %s\n", r.Error)
		return
	}
	if r.Result != "" {
		fmt.Fprintln(c.out, r.Result)
	}
}
