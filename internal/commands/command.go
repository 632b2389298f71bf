package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/today/internal/lifecycle"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeToggle  Type = "toggle"
	TypeList    Type = "list"
	TypeRefresh Type = "refresh"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TimeLayout is the accepted form of an add expiry, written as @HH:MM.
const TimeLayout = "15:04"

type AddArgs struct {
	Title string
	// At is a clock time parsed in UTC; only the hour and minute are
	// meaningful. Use ClockIn to place it in a zone.
	At *time.Time
}

type ToggleArgs struct {
	Target string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *ToggleArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeToggle, "done", "x":
		return parseToggle(input, args)
	case TypeList, "ls":
		return Command{Type: TypeList, Raw: input}, nil
	case TypeRefresh:
		return Command{Type: TypeRefresh, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	var at *time.Time
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "@") {
		tm, err := ParseTimeOfDay(strings.TrimPrefix(args[n-1], "@"))
		if err != nil {
			return Command{}, err
		}
		at = &tm
		args = args[:n-1]
	}
	title := strings.Join(args, " ")
	if !lifecycle.CanSubmit(title) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: strings.TrimSpace(title), At: at}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires one task number or id"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Target: strings.ToLower(args[0])}}, nil
}

// ParseTimeOfDay reads an HH:MM clock time.
func ParseTimeOfDay(s string) (time.Time, error) {
	tm, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time %q, want HH:MM", s)}
	}
	return tm, nil
}

// ClockIn re-anchors the hour and minute of tm in loc, so that reading the
// result in loc yields the same clock time the user typed.
func ClockIn(tm time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(2000, time.January, 1, tm.Hour(), tm.Minute(), 0, 0, loc)
}
