package commands

import (
	"errors"
	"testing"
	"time"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"add standup @09:30", TypeAdd},
		{"toggle 2", TypeToggle},
		{"/done 3f2a", TypeToggle},
		{"list", TypeList},
		{"/ls", TypeList},
		{"REFRESH", TypeRefresh},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddWithTime(t *testing.T) {
	cmd, err := Parse("/add  call the bank  @14:05")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "call the bank" {
		t.Fatalf("title = %q", cmd.Add.Title)
	}
	if cmd.Add.At == nil || cmd.Add.At.Hour() != 14 || cmd.Add.At.Minute() != 5 {
		t.Fatalf("unexpected time: %v", cmd.Add.At)
	}
}

func TestParseAddWithoutTime(t *testing.T) {
	cmd, err := Parse("add email@example.com follow up")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.At != nil {
		t.Fatalf("expected no expiry, got %v", cmd.Add.At)
	}
	if cmd.Add.Title != "email@example.com follow up" {
		t.Fatalf("title = %q", cmd.Add.Title)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "add @10:00", "add lunch @25:00", "add lunch @noon", "toggle", "toggle 1 2"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/", " / "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteToggleTarget(t *testing.T) {
	cmd, err := Parse("toggle AB12")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var got string
	_, err = Execute(cmd, Handlers{Toggle: func(a ToggleArgs) (Result, error) {
		got = a.Target
		return Result{}, nil
	}})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if got != "ab12" {
		t.Fatalf("target = %q, want lowercased", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("list")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestClockInKeepsTypedClockTime(t *testing.T) {
	tm, err := ParseTimeOfDay("18:30")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ist := time.FixedZone("IST", 5*3600+1800)
	got := ClockIn(tm, ist).In(ist)
	if got.Hour() != 18 || got.Minute() != 30 {
		t.Fatalf("clock time shifted: %s", got)
	}
	if ClockIn(tm, nil).Location() != time.Local {
		t.Fatal("nil location should mean local")
	}
}
