package cli

import (
	"context"

	"chess-manager/internal/domain"
	"chess-manager/internal/service"
)

func (m *Menu) createPlayer(ctx context.Context) error {
	var p domain.Player
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter player's last name: ", &p.LastName},
		{"Enter player's first name: ", &p.FirstName},
		{"Enter player's date of birth (YYYY-MM-DD): ", &p.BirthDate},
		{"Enter player's national chess ID: ", &p.ChessID},
	}
	for _, f := range fields {
		v, err := m.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	created, err := m.players.Create(ctx, p)
	if err != nil {
		return err
	}
	m.printf("Player %s (%s) created.\n", created.FullName(), created.ChessID)
	return nil
}

func (m *Menu) listPlayers(context.Context) error {
	m.printPlayers(m.players.List())
	return nil
}

func (m *Menu) printPlayers(players []domain.Player) {
	if len(players) == 0 {
		m.println("No players found.")
		return
	}
	m.println("List of players:")
	for i, p := range players {
		m.printf("%d. %s, %s (%s)\n", i+1, p.LastName, p.FirstName, p.ChessID)
	}
}

func (m *Menu) modifyPlayer(ctx context.Context) error {
	players := m.players.List()
	m.printPlayers(players)
	if len(players) == 0 {
		return nil
	}

	index, err := m.promptIndex("Enter the index of the player you want to modify: ", len(players))
	if err != nil {
		return err
	}
	p := players[index]
	m.printf("Modifying player: %s, %s (%s)\n", p.LastName, p.FirstName, p.ChessID)

	var update service.PlayerUpdate
	if update.LastName, err = m.prompt("Enter new last name (leave blank to keep '" + p.LastName + "'): "); err != nil {
		return err
	}
	if update.FirstName, err = m.prompt("Enter new first name (leave blank to keep '" + p.FirstName + "'): "); err != nil {
		return err
	}
	if update.BirthDate, err = m.prompt("Enter new date of birth (YYYY-MM-DD) (leave blank to keep '" + p.BirthDate + "'): "); err != nil {
		return err
	}
	if update.ChessID, err = m.prompt("Enter new national chess ID (leave blank to keep '" + p.ChessID + "'): "); err != nil {
		return err
	}

	updated, err := m.players.Modify(ctx, index, update)
	if err != nil {
		return err
	}
	m.printf("Player %s (%s) updated.\n", updated.FullName(), updated.ChessID)
	return nil
}
