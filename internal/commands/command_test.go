package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:2024-04-01", TypeAdd},
		{"done 3f2a", TypeDone},
		{"show today", TypeShow},
		{"quiet on", TypeQuiet},
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

func TestParseAddModifiers(t *testing.T) {
	cmd, err := Parse("add water the plants due:2024-03-15 at:09:30 p:high")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Title != "water the plants" {
		t.Fatalf("title = %q", a.Title)
	}
	if a.Due != "2024-03-15" || a.At != "09:30" || a.Priority != "high" {
		t.Fatalf("args = %+v", a)
	}
}

func TestParseAddDefaultsPriority(t *testing.T) {
	cmd, err := Parse("add call the bank")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Priority != "medium" {
		t.Fatalf("priority = %q, want medium", cmd.Add.Priority)
	}
	if cmd.Add.Due != "" || cmd.Add.At != "" {
		t.Fatalf("unexpected modifiers: %+v", cmd.Add)
	}
}

func TestParseAddRejectsBadModifiers(t *testing.T) {
	cases := []string{
		"add x due:tomorrow",
		"add x at:25:00",
		"add x p:urgent",
		"add due:2024-03-15",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: err = %v, want invalid_argument", in, err)
		}
	}
}

func TestParseShowSubjects(t *testing.T) {
	for _, subject := range []string{"today", "overdue", "rules"} {
		cmd, err := Parse("show " + subject)
		if err != nil {
			t.Fatalf("parse show %s: %v", subject, err)
		}
		if cmd.Show.Subject != subject {
			t.Fatalf("subject = %q, want %q", cmd.Show.Subject, subject)
		}
	}
	_, err := Parse("show everything")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestParseQuiet(t *testing.T) {
	on, err := Parse("quiet on")
	if err != nil {
		t.Fatalf("parse quiet on: %v", err)
	}
	if !on.Quiet.Enabled {
		t.Fatal("quiet on parsed as disabled")
	}
	off, err := Parse("quiet off")
	if err != nil {
		t.Fatalf("parse quiet off: %v", err)
	}
	if off.Quiet.Enabled {
		t.Fatal("quiet off parsed as enabled")
	}
	if _, err := Parse("quiet maybe"); err == nil {
		t.Fatal("expected error for quiet maybe")
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
	cmd, err := Parse("/done abc123")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a DoneArgs) (Result, error) {
			called = true
			if a.Target != "abc123" {
				t.Fatalf("unexpected target: %q", a.Target)
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

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show today")
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
