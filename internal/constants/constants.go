package constants

import "time"

const (
	MinRosterSize    = 16
	DefaultNumRounds = 4
	DoneSentinel     = "done"
)

const (
	WinPoints  = 1.0
	DrawPoints = 0.5
)

const (
	StoreTimeout    = 5 * time.Second
	RequestTimeout  = 10 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	PlayersFile     = "players.json"
	TournamentsFile = "tournaments.json"
	JSONIndent      = "    "
)

// single writer: the menu process is the only one mutating state
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	EventSubjectPrefix = "chess.tournament"
)
