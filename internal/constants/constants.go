package constants

import "time"

const (
	DefaultSessionTTL    = 6 * time.Hour
	SessionSweepInterval = 10 * time.Minute
)

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ClientTimeout   = 10 * time.Second
)

// The default database is in-memory and lives exactly as long as its single
// connection, so that connection is never recycled.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 0
	DBMaxIdleTime     = 0
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SessionIDLength     = 12
	TournamentSuffixLen = 6
	DefaultHowOut       = "Bowled"
	MinTournamentTeams  = 2
	MaxTournamentTeams  = 32
)
