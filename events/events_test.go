package events_test

import (
	"strings"
	"testing"

	"github.com/steinertree/mctree/events"
)

func TestRead_ParsesAllActionKinds(t *testing.T) {
	src := strings.NewReader(strings.Join([]string{
		"# comment line",
		"a 1",
		"",
		"r 2",
		"t 3",
		"i 25",
	}, "\n"))

	got, err := events.Read(src)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []events.Event{
		{Action: events.Add, Arg: 1},
		{Action: events.Remove, Arg: 2},
		{Action: events.Tick, Arg: 3},
		{Action: events.Improve, Arg: 25},
	}
	if len(got) != len(want) {
		t.Fatalf("want %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestRead_RejectsUnknownAction(t *testing.T) {
	_, err := events.Read(strings.NewReader("x 1"))
	if err == nil {
		t.Fatal("want error for unknown action")
	}
}

func TestRead_RejectsMalformedLine(t *testing.T) {
	_, err := events.Read(strings.NewReader("a"))
	if err == nil {
		t.Fatal("want error for missing argument")
	}
}

func TestRead_RejectsNegativeArg(t *testing.T) {
	_, err := events.Read(strings.NewReader("a -1"))
	if err == nil {
		t.Fatal("want error for negative argument")
	}
}
