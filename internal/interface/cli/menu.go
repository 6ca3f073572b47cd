// Package cli implements the interactive console interface of the registry.
// The shell reads menu choices through a Prompter, dispatches them to the
// application handlers and renders results with the presenter package.
package cli

import (
	"errors"
	"strconv"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENU CHOICES
// ══════════════════════════════════════════════════════════════════════════════

// Command is a main menu choice.
type Command int

const (
	CmdCheckSeats Command = iota + 1
	CmdRegister
	CmdDelete
	CmdFind
	CmdStore
	CmdLoad
	CmdList
	CmdAdditional
	CmdExit
)

// SubCommand is an additional controls menu choice.
type SubCommand int

const (
	SubSetName SubCommand = iota + 1
	SubSetMarks
	SubSummaryReport
	SubCompleteReport
	SubBack
)

var (
	// ErrNotANumber is returned for a choice that is not an integer.
	ErrNotANumber = errors.New("choice is not a number")

	// ErrOutOfRange is returned for an integer choice outside the menu.
	ErrOutOfRange = errors.New("choice is out of range")
)

// ParseCommand parses a main menu choice.
func ParseCommand(input string) (Command, error) {
	n, err := parseChoice(input, int(CmdCheckSeats), int(CmdExit))
	return Command(n), err
}

// ParseSubCommand parses an additional controls menu choice.
func ParseSubCommand(input string) (SubCommand, error) {
	n, err := parseChoice(input, int(SubSetName), int(SubBack))
	return SubCommand(n), err
}

func parseChoice(input string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < lo || n > hi {
		return n, ErrOutOfRange
	}
	return n, nil
}

func (c Command) String() string {
	switch c {
	case CmdCheckSeats:
		return "check_seats"
	case CmdRegister:
		return "register"
	case CmdDelete:
		return "delete"
	case CmdFind:
		return "find"
	case CmdStore:
		return "store"
	case CmdLoad:
		return "load"
	case CmdList:
		return "list"
	case CmdAdditional:
		return "additional_controls"
	case CmdExit:
		return "exit"
	default:
		return "unknown"
	}
}

func (c SubCommand) String() string {
	switch c {
	case SubSetName:
		return "set_name"
	case SubSetMarks:
		return "set_marks"
	case SubSummaryReport:
		return "summary_report"
	case SubCompleteReport:
		return "complete_report"
	case SubBack:
		return "back"
	default:
		return "unknown"
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Menu text
// ─────────────────────────────────────────────────────────────────────────────

const mainMenu = `
*************************************
                MENU
*************************************
1. Check available seats
2. Register student (with ID)
3. Delete student
4. Find student by ID
5. Store student details into a file
6. Load student details from a file
7. View all students
8. Additional controls
9. Exit

`

const mainPrompt = "Enter your choice : "

const subMenu = `
***** Additional Controls *****
1. Add student name
2. Add module marks
3. Generate summary report
4. Generate complete report
5. Back to main menu
`

const subPrompt = "Enter your choice: "
