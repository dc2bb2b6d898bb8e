package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// launchTournament plays the tournament to its last round. An open round
// left by an earlier session is finished before new rounds are paired.
func (m *Menu) launchTournament(ctx context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament to launch: ")
	if err != nil || !ok {
		return err
	}
	t, err := m.tournaments.CheckLaunch(index)
	if err != nil {
		return err
	}

	for t.Status() != domain.StatusCompleted {
		round, err := t.LastRound()
		if err != nil || round.Closed() {
			if round, err = m.tournaments.OpenRound(ctx, index); err != nil {
				return err
			}
		} else {
			m.printf("\nResuming %s\n", round.Name)
		}

		m.printf("\n%s\nStart: %s\n", round.Name, round.StartDatetime.Local().Format(timeLayout))
		m.printMatches(round, true)

		if err := m.collectResults(ctx, index); err != nil {
			return err
		}
		if round, err = m.tournaments.CloseRound(ctx, index); err != nil {
			return err
		}
		m.printf("End: %s\n", round.EndDatetime.Local().Format(timeLayout))
	}

	winner, err := m.tournaments.Winner(index)
	if err != nil {
		return err
	}
	m.println("\nTournament finished.")
	m.printf("The winner is %s (%s) with %s points\n", winner.FullName(), winner.ChessID, formatScore(winner.Score))
	return nil
}

func (m *Menu) showOngoingMatches(context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament: ")
	if err != nil || !ok {
		return err
	}
	round, err := m.tournaments.CurrentRound(index)
	if errors.Is(err, domain.ErrNoRounds) {
		m.println("No ongoing matches found.")
		return nil
	}
	if err != nil {
		return err
	}

	state := "open"
	if round.Closed() {
		state = "closed"
	}
	m.printf("\nCurrent round: %s (%s)\n", round.Name, state)
	m.printMatches(round, false)
	return nil
}

// enterMatchResults records results on the last round, then offers to
// close it.
func (m *Menu) enterMatchResults(ctx context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament: ")
	if err != nil || !ok {
		return err
	}
	round, err := m.tournaments.CurrentRound(index)
	if err != nil {
		return err
	}

	m.printf("\n%s\n", round.Name)
	m.printMatches(round, true)
	if err := m.collectResults(ctx, index); err != nil {
		return err
	}
	if round.Closed() {
		return nil
	}

	answer, err := m.prompt("Close the round? (y/N): ")
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	closed, err := m.tournaments.CloseRound(ctx, index)
	if err != nil {
		return err
	}
	m.printf("%s closed at %s\n", closed.Name, closed.EndDatetime.Local().Format(timeLayout))
	return nil
}

// collectResults reads match numbers and outcomes until the done sentinel.
// Bad match numbers and outcomes are reported and asked again.
func (m *Menu) collectResults(ctx context.Context, index int) error {
	for {
		round, err := m.tournaments.CurrentRound(index)
		if err != nil {
			return err
		}

		line, err := m.prompt(fmt.Sprintf("Enter match number to record (or '%s'): ", constants.DoneSentinel))
		if err != nil {
			return err
		}
		if isDone(line) {
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			m.printf("Invalid match number %q.\n", line)
			continue
		}
		if n < 1 || n > len(round.Matches) {
			m.report(fmt.Errorf("%w: %d not in [1, %d]", domain.ErrInvalidMatchIndex, n, len(round.Matches)))
			continue
		}
		match := round.Matches[n-1]
		if match.IsBye() {
			m.report(domain.ErrByeMatch)
			continue
		}

		outcome, err := m.promptOutcome(n, match)
		if err != nil {
			return err
		}
		if _, err := m.tournaments.RecordResult(ctx, index, n-1, outcome); err != nil {
			if errors.Is(err, domain.ErrInvalidMatchIndex) || errors.Is(err, domain.ErrByeMatch) {
				m.report(err)
				continue
			}
			return err
		}
		m.printf("Match %d recorded as a %s for %s.\n", n, outcome, match[0].Player.FullName())
	}
}

func (m *Menu) promptOutcome(number int, match domain.Match) (domain.Outcome, error) {
	label := fmt.Sprintf("Enter result for match %d (%s vs. %s) (1 for win, 2 for draw, 3 for loss): ",
		number, match[0].Player.FullName(), match[1].Player.FullName())
	for {
		line, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		outcome, err := domain.ParseOutcome(line)
		if err == nil {
			return outcome, nil
		}
		m.report(err)
	}
}

func (m *Menu) summaryOfRounds(context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament: ")
	if err != nil || !ok {
		return err
	}
	summary, err := m.tournaments.Summary(index)
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		m.println("No rounds played yet.")
		return nil
	}

	for _, r := range summary {
		m.printf("\n%s\nStart: %s\nEnd: %s\n", r.Name, r.Start.Local().Format(timeLayout), formatEnd(r.End))
		m.println("\nMatches:")
		for _, ms := range r.Matches {
			if ms.IsBye() {
				m.printf("Match %d: %s has a bye\n", ms.Number, ms.First.Name)
				continue
			}
			m.printf("Match %d: %s (%s), %s (%s)\n", ms.Number,
				ms.First.Name, formatScore(ms.First.Points), ms.Second.Name, formatScore(ms.Second.Points))
		}
	}

	standings, err := m.tournaments.Standings(index)
	if err != nil {
		return err
	}
	m.println("\nStandings:")
	for i, p := range standings {
		m.printf("%d. %s (%s) %s\n", i+1, p.FullName(), p.ChessID, formatScore(p.Score))
	}
	return nil
}

func (m *Menu) printMatches(round *domain.Round, withScores bool) {
	m.println("\nMatches:")
	for i, match := range round.Matches {
		if match.IsBye() {
			m.printf("Match %d: %s has a bye\n", i+1, match[0].Player.FullName())
			continue
		}
		if withScores {
			m.printf("Match %d: %s (%s) vs. %s (%s)\n", i+1,
				match[0].Player.FullName(), formatScore(match[0].Player.Score),
				match[1].Player.FullName(), formatScore(match[1].Player.Score))
			continue
		}
		m.printf("Match %d: %s vs. %s\n", i+1, match[0].Player.FullName(), match[1].Player.FullName())
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func formatEnd(end *time.Time) string {
	if end == nil {
		return "open"
	}
	return end.Local().Format(timeLayout)
}
