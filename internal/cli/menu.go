// Package cli is the interactive text interface. It reads one answer per
// line and never terminates on bad input: every error is reported and the
// menu is shown again.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chess-manager/internal/constants"
	"chess-manager/internal/service"

	"github.com/rs/zerolog"
)

var errExit = errors.New("exit requested")

type Menu struct {
	in          *bufio.Scanner
	out         io.Writer
	players     *service.PlayerService
	tournaments *service.TournamentService
	logger      zerolog.Logger
}

func NewMenu(in io.Reader, out io.Writer, players *service.PlayerService, tournaments *service.TournamentService, logger zerolog.Logger) *Menu {
	return &Menu{
		in:          bufio.NewScanner(in),
		out:         out,
		players:     players,
		tournaments: tournaments,
		logger:      logger.With().Str("component", "cli").Logger(),
	}
}

type option struct {
	label string
	run   func(ctx context.Context) error
}

func (m *Menu) options() []option {
	return []option{
		{"Create tournament", m.createTournament},
		{"Modify tournament", m.modifyTournament},
		{"Create player", m.createPlayer},
		{"List players", m.listPlayers},
		{"Modify player", m.modifyPlayer},
		{"Register players for tournament", m.registerPlayers},
		{"Launch tournament", m.launchTournament},
		{"See ongoing matches", m.showOngoingMatches},
		{"Enter match results", m.enterMatchResults},
		{"Summary of rounds", m.summaryOfRounds},
		{"Exit", func(context.Context) error { return errExit }},
	}
}

// Run shows the menu until the exit option is chosen, the input ends or ctx
// is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	options := m.options()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.println("\nMenu:")
		for i, o := range options {
			m.printf("%d. %s\n", i+1, o.label)
		}

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(options) {
			m.report(fmt.Errorf("%w: %q is not a menu option", service.ErrInvalidSelection, choice))
			continue
		}

		if err := options[n-1].run(ctx); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
				return m.finish(err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.report(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
		m.println("Goodbye.")
		m.logger.Debug().Msg("menu closed")
		return nil
	}
	return err
}

// prompt returns the next input line, trimmed, or io.EOF once input is
// exhausted.
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		m.println()
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// promptInt reads an integer. Blank input returns fallback.
func (m *Menu) promptInt(label string, fallback int) (int, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", service.ErrInvalidSelection, line)
	}
	return n, nil
}

// promptIndex reads a 1-based position and returns it 0-based.
func (m *Menu) promptIndex(label string, count int) (int, error) {
	n, err := m.promptInt(label, 0)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: index %d not in [1, %d]", service.ErrInvalidSelection, n, count)
	}
	return n - 1, nil
}

func isDone(line string) bool {
	return strings.EqualFold(line, constants.DoneSentinel)
}

func (m *Menu) report(err error) {
	m.logger.Debug().Err(err).Msg("operation failed")
	m.printf("Error: %v\n", err)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(args ...any) {
	fmt.Fprintln(m.out, args...)
}
