package cli

import (
	"context"
	"fmt"
	"strings"

	"chess-manager/internal/constants"
	"chess-manager/internal/service"
)

func (m *Menu) createTournament(ctx context.Context) error {
	var in service.TournamentInput
	var err error
	if in.Name, err = m.prompt("Enter tournament name: "); err != nil {
		return err
	}
	if in.Location, err = m.prompt("Enter tournament location: "); err != nil {
		return err
	}
	if in.StartDate, err = m.prompt("Enter start date (YYYY-MM-DD): "); err != nil {
		return err
	}
	if in.EndDate, err = m.prompt("Enter end date (YYYY-MM-DD): "); err != nil {
		return err
	}
	label := fmt.Sprintf("Enter number of rounds (default %d): ", constants.DefaultNumRounds)
	if in.NumRounds, err = m.promptInt(label, constants.DefaultNumRounds); err != nil {
		return err
	}
	if in.NumRounds < 1 {
		return fmt.Errorf("%w: %d", service.ErrInvalidNumRounds, in.NumRounds)
	}

	index, err := m.tournaments.Create(ctx, in)
	if err != nil {
		return err
	}
	m.printf("Tournament %d created.\n", index+1)
	return nil
}

func (m *Menu) listTournaments() bool {
	tournaments := m.tournaments.List()
	if len(tournaments) == 0 {
		m.println("No tournaments found.")
		return false
	}
	m.println("List of tournaments:")
	for i, t := range tournaments {
		m.printf("%d. %s (%s) [%s]\n", i+1, t.Name, t.Location, strings.ToLower(string(t.Status())))
	}
	return true
}

// selectTournament lists the tournaments and reads a choice. ok is false when
// there is nothing to choose from.
func (m *Menu) selectTournament(label string) (index int, ok bool, err error) {
	if !m.listTournaments() {
		return 0, false, nil
	}
	index, err = m.promptIndex(label, len(m.tournaments.List()))
	if err != nil {
		return 0, false, err
	}
	return index, true, nil
}

func (m *Menu) modifyTournament(ctx context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament you want to modify: ")
	if err != nil || !ok {
		return err
	}
	t, err := m.tournaments.Get(index)
	if err != nil {
		return err
	}
	m.printf("Modifying tournament: %s (%s)\n", t.Name, t.Location)

	var update service.TournamentUpdate
	if update.Name, err = m.prompt("Enter new name (leave blank to keep '" + t.Name + "'): "); err != nil {
		return err
	}
	if update.Location, err = m.prompt("Enter new location (leave blank to keep '" + t.Location + "'): "); err != nil {
		return err
	}
	if update.StartDate, err = m.prompt("Enter new start date (YYYY-MM-DD) (leave blank to keep '" + t.StartDate + "'): "); err != nil {
		return err
	}
	if update.EndDate, err = m.prompt("Enter new end date (YYYY-MM-DD) (leave blank to keep '" + t.EndDate + "'): "); err != nil {
		return err
	}
	rounds, err := m.promptInt(fmt.Sprintf("Enter new number of rounds (leave blank to keep %d): ", t.NumRounds), t.NumRounds)
	if err != nil {
		return err
	}
	if rounds != t.NumRounds {
		update.NumRounds = &rounds
	}

	if _, err := m.tournaments.Modify(ctx, index, update); err != nil {
		return err
	}
	m.println("Tournament updated.")
	return nil
}

func (m *Menu) registerPlayers(ctx context.Context) error {
	index, ok, err := m.selectTournament("Enter the index of the tournament: ")
	if err != nil || !ok {
		return err
	}
	if t, _ := m.tournaments.Get(index); len(t.Rounds) > 0 {
		return fmt.Errorf("%w: %s", service.ErrTournamentStarted, t.Name)
	}

	m.printf("Select players to register (enter '%s' when finished):\n", constants.DoneSentinel)
	var ids []string
	seen := make(map[string]bool)
	for {
		line, err := m.prompt("Enter player's chess IDs by comma: ")
		if err != nil {
			return err
		}
		if isDone(line) {
			break
		}
		for _, id := range service.ParseChessIDs(line) {
			if seen[id] {
				m.printf("Player with ID %s is already selected.\n", id)
				continue
			}
			p, err := m.players.Find(id)
			if err != nil {
				m.printf("Player with ID %s not found.\n", id)
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			m.printf("Selected %s (%d so far).\n", p.FullName(), len(ids))
		}
	}

	reg, err := m.tournaments.Register(ctx, index, ids)
	if err != nil {
		return err
	}
	m.printf("%d players registered.\n", len(reg.Registered))
	return nil
}
