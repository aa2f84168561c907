package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// CommandKind enumerates the player commands.
type CommandKind int

const (
	CommandFace CommandKind = iota
	CommandAvoid
	CommandQuit
	CommandHelp
)

// Command is one parsed player input line.
type Command struct {
	Kind CommandKind
	// Index is the room slot to face; meaningful only for CommandFace.
	Index int
	// Method is the fight method; meaningful only for CommandFace.
	Method engine.Method
}

// ParseCommand parses one input line.
//
// Accepted forms: a card index ("2"), an index with a fight method
// ("2 w", "2 weapon", "2 b"), "a"/"avoid", "h"/"help", "q"/"quit".
//
// Postcondition: Returns a valid Command or a non-nil error.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("ui: empty command")
	}

	switch fields[0] {
	case "a", "avoid":
		return Command{Kind: CommandAvoid}, nil
	case "q", "quit":
		return Command{Kind: CommandQuit}, nil
	case "h", "help", "?":
		return Command{Kind: CommandHelp}, nil
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("ui: unknown command %q", fields[0])
	}

	method := engine.MethodAuto
	if len(fields) > 1 {
		switch fields[1] {
		case "w", "weapon":
			method = engine.MethodWeapon
		case "b", "bare", "barehanded":
			method = engine.MethodBarehanded
		default:
			return Command{}, fmt.Errorf("ui: unknown fight method %q", fields[1])
		}
	}

	return Command{Kind: CommandFace, Index: index, Method: method}, nil
}

// Input reads player commands line by line.
type Input struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewInput creates an Input reading from in and prompting on out.
func NewInput(in io.Reader, out io.Writer) *Input {
	return &Input{scanner: bufio.NewScanner(in), out: out}
}

// Next prompts for and parses the next command. Invalid lines are reported
// and retried. Returns io.EOF when input is exhausted.
func (i *Input) Next() (Command, error) {
	for {
		fmt.Fprint(i.out, "> ")
		if !i.scanner.Scan() {
			if err := i.scanner.Err(); err != nil {
				return Command{}, err
			}
			return Command{}, io.EOF
		}
		cmd, err := ParseCommand(i.scanner.Text())
		if err != nil {
			fmt.Fprintf(i.out, "%v (h for help)\n", err)
			continue
		}
		return cmd, nil
	}
}
