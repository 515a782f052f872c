// Command scorecli scores a match against a running scorer server.
//
//	scorecli start -team1 Lions -team2 Tigers -overs 5
//	scorecli -session ID runs 4
//	scorecli -session ID wicket [playerId] [howOut]
//	scorecli tournament create "Summer Cup"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cricket-scorer/internal/api"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/server"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := flag.String("addr", envOr("SCORER_ADDR", "http://localhost:8080"), "scorer server base URL")
	session := flag.String("session", os.Getenv("SCORER_SESSION"), "match session id")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ClientTimeout)
	defer cancel()

	client := api.NewScorerClient(*addr)
	if err := run(ctx, client, *session, flag.Args(), os.Stdout); err != nil {
		logger.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: scorecli [-addr URL] [-session ID] <command> [args]

commands:
  start [-team1 NAME] [-team2 NAME] [-overs N] [-wickets N] [-rotate]
  show
  runs N             record N runs (0-6) off a legal ball
  wide | noball      record one extra run, no ball counted
  wicket [ID] [HOW]  dismiss a batsman (striker by default)
  bowler ID          change bowler
  toggle             start the second innings
  reset              reset the match
  tournament create NAME | add ID TEAM | start ID | show ID`)
	flag.PrintDefaults()
}

func run(ctx context.Context, c *api.ScorerClient, session string, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "start":
		return start(ctx, c, rest, out)
	case "tournament":
		return tournament(ctx, c, rest, out)
	}

	if session == "" {
		return fmt.Errorf("%s needs -session", cmd)
	}

	var (
		m   *server.MatchResponse
		err error
	)
	switch cmd {
	case "show":
		m, err = c.GetMatch(ctx, session)
	case "runs":
		if len(rest) != 1 {
			return fmt.Errorf("runs takes exactly one number")
		}
		n, convErr := strconv.Atoi(rest[0])
		if convErr != nil {
			return fmt.Errorf("invalid runs %q: %w", rest[0], convErr)
		}
		m, err = c.AddRuns(ctx, session, n)
	case "wide":
		m, err = c.AddExtra(ctx, session, domain.ExtraWide)
	case "noball":
		m, err = c.AddExtra(ctx, session, domain.ExtraNoBall)
	case "wicket":
		var playerID, howOut string
		if len(rest) > 0 {
			playerID = rest[0]
		}
		if len(rest) > 1 {
			howOut = strings.Join(rest[1:], " ")
		}
		m, err = c.AddWicket(ctx, session, playerID, howOut)
	case "bowler":
		if len(rest) != 1 {
			return fmt.Errorf("bowler takes exactly one id")
		}
		m, err = c.ChangeBowler(ctx, session, rest[0])
	case "toggle":
		m, err = c.ToggleInnings(ctx, session)
	case "reset":
		m, err = c.ResetMatch(ctx, session)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}

	printMatch(out, m)
	return nil
}

func start(ctx context.Context, c *api.ScorerClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	team1 := fs.String("team1", "", "first batting team")
	team2 := fs.String("team2", "", "chasing team")
	overs := fs.Int("overs", 0, "overs per innings (server default when 0)")
	wickets := fs.Int("wickets", 0, "wicket limit (server default when 0)")
	rotate := fs.Bool("rotate", false, "rotate strike on odd runs and at over end")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := c.StartMatch(ctx, server.StartMatchRequest{
		Team1Name:    *team1,
		Team2Name:    *team2,
		TotalOvers:   *overs,
		MaxWickets:   *wickets,
		RotateStrike: *rotate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "session %s\n", m.SessionID)
	printMatch(out, m)
	return nil
}

func tournament(ctx context.Context, c *api.ScorerClient, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("tournament needs a subcommand and an argument")
	}

	var (
		t   *server.TournamentResponse
		err error
	)
	switch args[0] {
	case "create":
		t, err = c.CreateTournament(ctx, strings.Join(args[1:], " "))
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("tournament add takes an id and a team name")
		}
		t, err = c.AddTournamentTeam(ctx, args[1], strings.Join(args[2:], " "))
	case "show":
		t, err = c.GetTournament(ctx, args[1])
	case "start":
		m, err := c.StartTournamentMatch(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "session %s\n", m.SessionID)
		printMatch(out, m)
		return nil
	default:
		return fmt.Errorf("unknown tournament command %q", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", t.Name, t.TournamentID)
	if len(t.Teams) == 0 {
		fmt.Fprintln(out, "No teams added yet.")
	}
	for i, team := range t.Teams {
		fmt.Fprintf(out, "%d. %s\n", i+1, team)
	}
	return nil
}

func printMatch(out io.Writer, m *server.MatchResponse) {
	sb := m.Scoreboard
	kind := "SINGLE MATCH"
	if m.State.MatchSettings.IsTournament {
		kind = "TOURNAMENT MATCH"
	}

	fmt.Fprintln(out, kind)
	fmt.Fprintf(out, "%s* %s (%s/%d overs)  RR: %.2f  Projected: %d\n",
		sb.BattingTeam, sb.Score, sb.Overs, sb.TotalOvers, sb.RunRate, sb.ProjectedScore)
	fmt.Fprintf(out, "Striker: %s  Non-striker: %s\n", m.State.CurrentBatsmen[0], m.State.CurrentBatsmen[1])
	if sb.Target > 0 {
		fmt.Fprintf(out, "Target: %d  %s  Required RR: %s  (%d balls remaining)\n",
			sb.Target, sb.ChaseSummary, sb.RequiredRate, sb.BallsLeft)
	}
	for _, a := range m.Alerts {
		fmt.Fprintf(out, "%s: %s\n", a.Title, a.Message)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
