package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cricket-scorer/internal/domain"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
)

var codeFor = []struct {
	code connect.Code
	errs []error
}{
	{connect.CodeNotFound, []error{domain.ErrSessionNotFound, domain.ErrTournamentNotFound}},
	{connect.CodeAlreadyExists, []error{domain.ErrDuplicateTeam}},
	{connect.CodeInvalidArgument, []error{
		domain.ErrInvalidSettings,
		domain.ErrUnknownAction,
		domain.ErrInvalidRuns,
		domain.ErrInvalidExtra,
		domain.ErrUnknownPlayer,
		domain.ErrNotAtCrease,
		domain.ErrEmptyTeamName,
	}},
	{connect.CodeFailedPrecondition, []error{
		domain.ErrMatchComplete,
		domain.ErrPlayerAlreadyOut,
		domain.ErrAllOut,
		domain.ErrSecondInnings,
		domain.ErrInningsInProgress,
		domain.ErrNotEnoughTeams,
		domain.ErrTooManyTeams,
	}},
}

func toConnectError(err error) error {
	for _, c := range codeFor {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return connect.NewError(c.code, err)
			}
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}

// https://github.com/go-playground/validator/blob/master/_examples/simple/main.go
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
	}
	sort.Strings(msgs)
	return connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(msgs, "; ")))
}
