package demo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrQuit = errors.New("quit")

// Session drives an App from text commands, one per line:
//
//	inc          click the increment button
//	set N        set the counter to N
//	user NAME    type NAME in the user input
//	clear        clear the user input
//	unmount N    unmount the N-th counter display (from 0)
//	show         print the rendered components
//	quit         stop
type Session struct {
	app *App
	out io.Writer
}

func NewSession(app *App, out io.Writer) *Session {
	return &Session{app: app, out: out}
}

// Exec runs one command and prints the rendered components. It returns ErrQuit on quit.
func (s *Session) Exec(line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch cmd {
	case "":
		return nil
	case "quit", "exit":
		return ErrQuit
	case "show":
	case "inc":
		s.app.Root.Dispatch(EventIncrement, "")
	case "set":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("set: %w", err)
		}
		s.app.Counter.Set(n)
	case "user":
		s.app.Root.Dispatch(EventSetUser, arg)
	case "clear":
		s.app.Root.Dispatch(EventSetUser, "")
	case "unmount":
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("unmount: %w", err)
		}
		if !s.app.UnmountDisplay(i) {
			return fmt.Errorf("unmount: no counter display %d", i)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	_, err := fmt.Fprintf(s.out, "%s\n\n", s.app.Root.Text())
	return err
}

// Run executes commands from in until EOF or quit. Command errors are printed and do not stop the session.
func (s *Session) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := s.Exec(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}

	return scanner.Err()
}
