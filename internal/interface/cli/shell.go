package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/query"
	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/interface/cli/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// Handlers bundles the application handlers driven by the shell.
type Handlers struct {
	Seats          *query.GetSeatsHandler
	Find           *query.FindStudentHandler
	List           *query.ListStudentsHandler
	SummaryReport  *query.SummaryReportHandler
	CompleteReport *query.CompleteReportHandler

	Register    *command.RegisterStudentHandler
	Delete      *command.DeleteStudentHandler
	UpdateName  *command.UpdateNameHandler
	UpdateMarks *command.UpdateMarksHandler
	Store       *command.StoreRosterHandler
	Load        *command.LoadRosterHandler
}

// NewHandlers wires every handler to one roster and one store.
func NewHandlers(r *roster.Roster, store roster.Store, logger *slog.Logger) Handlers {
	return Handlers{
		Seats:          query.NewGetSeatsHandler(r),
		Find:           query.NewFindStudentHandler(r),
		List:           query.NewListStudentsHandler(r),
		SummaryReport:  query.NewSummaryReportHandler(r),
		CompleteReport: query.NewCompleteReportHandler(r),

		Register:    command.NewRegisterStudentHandler(r, logger),
		Delete:      command.NewDeleteStudentHandler(r, logger),
		UpdateName:  command.NewUpdateNameHandler(r, logger),
		UpdateMarks: command.NewUpdateMarksHandler(r, logger),
		Store:       command.NewStoreRosterHandler(r, store, logger),
		Load:        command.NewLoadRosterHandler(r, store, logger),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SHELL
// ══════════════════════════════════════════════════════════════════════════════

// ShellConfig contains configuration for the shell.
type ShellConfig struct {
	// Prompter reads user input.
	Prompter Prompter

	// Out receives menus and results.
	Out io.Writer

	// Err receives input errors of the main menu. Defaults to Out.
	Err io.Writer

	// Logger for structured logging.
	Logger *slog.Logger
}

// Shell runs the menu loop.
type Shell struct {
	handlers Handlers
	prompter Prompter
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
}

// NewShell creates a new Shell.
func NewShell(handlers Handlers, cfg ShellConfig) *Shell {
	if cfg.Err == nil {
		cfg.Err = cfg.Out
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Shell{
		handlers: handlers,
		prompter: cfg.Prompter,
		out:      cfg.Out,
		errOut:   cfg.Err,
		logger:   cfg.Logger,
	}
}

// Run shows the main menu until the user exits, input ends or ctx is done.
// Exit and end of input return nil; nothing is persisted implicitly.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		exit, err := s.mainStep(ctx)
		if errors.Is(err, io.EOF) {
			s.logger.DebugContext(ctx, "input closed")
			return nil
		}
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

func (s *Shell) mainStep(ctx context.Context) (bool, error) {
	fmt.Fprint(s.out, mainMenu)
	line, err := s.prompter.Prompt(mainPrompt)
	if err != nil {
		return false, err
	}

	cmd, err := ParseCommand(line)
	switch {
	case errors.Is(err, ErrNotANumber):
		fmt.Fprintln(s.errOut, presenter.MsgInvalidNumber)
		return false, nil
	case errors.Is(err, ErrOutOfRange):
		fmt.Fprintln(s.out, presenter.MsgInvalidMainRange)
		return false, nil
	}

	s.logger.DebugContext(ctx, "menu choice", "command", cmd.String())

	switch cmd {
	case CmdCheckSeats:
		seats, _ := s.handlers.Seats.Handle(ctx, query.GetSeatsQuery{})
		presenter.Seats(s.out, seats)
	case CmdRegister:
		return false, s.register(ctx)
	case CmdDelete:
		return false, s.delete(ctx)
	case CmdFind:
		return false, s.find(ctx)
	case CmdStore:
		s.store(ctx)
	case CmdLoad:
		s.load(ctx)
	case CmdList:
		list, _ := s.handlers.List.Handle(ctx, query.ListStudentsQuery{})
		presenter.List(s.out, list)
	case CmdAdditional:
		return false, s.additional(ctx)
	case CmdExit:
		fmt.Fprintln(s.out, presenter.MsgExit)
		return true, nil
	}
	return false, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Main menu flows
// ─────────────────────────────────────────────────────────────────────────────

// register asks for an ID until it is usable, then for the name.
func (s *Shell) register(ctx context.Context) error {
	if seats, _ := s.handlers.Seats.Handle(ctx, query.GetSeatsQuery{}); seats.Available <= 0 {
		s.say(shared.ErrRosterFull)
		return nil
	}

	var id string
	for {
		line, err := s.prompter.Prompt("Enter Student ID (wXXXXXXX): ")
		if err != nil {
			return err
		}
		err = s.handlers.Register.CheckID(line)
		if err == nil {
			id = line
			break
		}
		s.say(err)
		if errors.Is(err, shared.ErrRosterFull) {
			return nil
		}
	}

	name, err := s.prompter.Prompt("Enter Student Name: ")
	if err != nil {
		return err
	}

	if _, err := s.handlers.Register.Handle(ctx, command.RegisterStudentCommand{StudentID: id, Name: name}); err != nil {
		s.say(err)
		return nil
	}
	fmt.Fprintln(s.out, presenter.MsgRegistered)
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	id, err := s.prompter.Prompt("Enter Student ID to delete: ")
	if err != nil {
		return err
	}

	_, err = s.handlers.Delete.Handle(ctx, command.DeleteStudentCommand{StudentID: id})
	switch {
	case errors.Is(err, shared.ErrStudentNotFound):
		fmt.Fprintln(s.out, presenter.MsgDeleteNotFound)
	case err != nil:
		s.say(err)
	default:
		fmt.Fprintln(s.out, presenter.MsgDeleted)
	}
	return nil
}

func (s *Shell) find(ctx context.Context) error {
	id, err := s.prompter.Prompt("Enter Student ID to find: ")
	if err != nil {
		return err
	}

	found, err := s.handlers.Find.Handle(ctx, query.FindStudentQuery{StudentID: id})
	if err != nil {
		s.say(err)
		return nil
	}
	presenter.Details(s.out, found)
	return nil
}

func (s *Shell) store(ctx context.Context) {
	res, err := s.handlers.Store.Handle(ctx, command.StoreRosterCommand{})
	if err != nil {
		fmt.Fprintf(s.errOut, "Error writing to the %s store. Try again. (%s)\n", s.handlers.Store.Backend(), shared.UserMessage(err))
		return
	}
	presenter.Stored(s.out, res)
}

func (s *Shell) load(ctx context.Context) {
	res, err := s.handlers.Load.Handle(ctx, command.LoadRosterCommand{})
	if err != nil {
		fmt.Fprintf(s.out, "Error occurred while loading from the %s store. %s\n", s.handlers.Load.Backend(), shared.UserMessage(err))
		return
	}
	presenter.Loaded(s.out, res)
}

// ─────────────────────────────────────────────────────────────────────────────
// Additional controls
// ─────────────────────────────────────────────────────────────────────────────

func (s *Shell) additional(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, subMenu)
		line, err := s.prompter.Prompt(subPrompt)
		if err != nil {
			return err
		}

		sub, err := ParseSubCommand(line)
		if err != nil {
			fmt.Fprintln(s.out, presenter.MsgInvalidSubChoice)
			continue
		}

		s.logger.DebugContext(ctx, "menu choice", "command", sub.String())

		switch sub {
		case SubSetName:
			err = s.setName(ctx)
		case SubSetMarks:
			err = s.setMarks(ctx)
		case SubSummaryReport:
			summary, _ := s.handlers.SummaryReport.Handle(ctx, query.SummaryReportQuery{})
			presenter.Summary(s.out, summary)
		case SubCompleteReport:
			complete, _ := s.handlers.CompleteReport.Handle(ctx, query.CompleteReportQuery{})
			presenter.Complete(s.out, complete)
		case SubBack:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) setName(ctx context.Context) error {
	id, err := s.prompter.Prompt("Enter Student ID: ")
	if err != nil {
		return err
	}
	if _, err := s.handlers.Find.Handle(ctx, query.FindStudentQuery{StudentID: id}); err != nil {
		s.say(err)
		return nil
	}

	name, err := s.prompter.Prompt("Enter Student Name: ")
	if err != nil {
		return err
	}
	if _, err := s.handlers.UpdateName.Handle(ctx, command.UpdateNameCommand{StudentID: id, Name: name}); err != nil {
		s.say(err)
		return nil
	}
	fmt.Fprintln(s.out, presenter.MsgNameUpdated)
	return nil
}

func (s *Shell) setMarks(ctx context.Context) error {
	id, err := s.prompter.Prompt("Enter Student ID: ")
	if err != nil {
		return err
	}
	if _, err := s.handlers.Find.Handle(ctx, query.FindStudentQuery{StudentID: id}); err != nil {
		s.say(err)
		return nil
	}

	var marks [3]float64
	for i := range marks {
		line, err := s.prompter.Prompt(fmt.Sprintf("Enter Module %d Marks: ", i+1))
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			fmt.Fprintln(s.out, presenter.MsgInvalidMarkInput)
			return nil
		}
		marks[i] = v
	}

	if _, err := s.handlers.UpdateMarks.Handle(ctx, command.UpdateMarksCommand{StudentID: id, Marks: marks}); err != nil {
		s.say(err)
		return nil
	}
	fmt.Fprintln(s.out, presenter.MsgMarksUpdated)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func (s *Shell) say(err error) {
	fmt.Fprintln(s.out, presenter.ErrorMessage(err))
}
