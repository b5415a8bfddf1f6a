package intro

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"lifeweeks/internal/features/expectancy"
)

var today = time.Date(2024, time.October, 19, 0, 0, 0, 0, time.UTC)

func newTestPrompter(input string) (*Prompter, *strings.Builder) {
	out := &strings.Builder{}
	return New(strings.NewReader(input), out), out
}

type fakeLookup map[string]float64

func (f fakeLookup) Lookup(name string) (float64, error) {
	if years, ok := f[name]; ok {
		return years, nil
	}
	return 0, fmt.Errorf("%w: %q", expectancy.ErrUnknownLocation, name)
}

func TestGreeting(t *testing.T) {
	tests := map[int]string{
		0:  "Good Morning!",
		11: "Good Morning!",
		12: "Good Afternoon!",
		17: "Good Afternoon!",
		18: "Good Night!",
		23: "Good Night!",
	}
	for hour, want := range tests {
		if got := Greeting(hour); got != want {
			t.Errorf("Greeting(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"Ada", "o'neil", "Mary-Jane"} {
		if !ValidName(name) {
			t.Errorf("ValidName(%q) = false", name)
		}
	}
	for _, name := range []string{"", "Ada Lovelace", "R2D2", "Zoë", "a.b"} {
		if ValidName(name) {
			t.Errorf("ValidName(%q) = true", name)
		}
	}
}

func TestParseBirthdate(t *testing.T) {
	want := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)
	for _, entry := range []string{"14/03/1990", "14-03-1990", "1990-03-14"} {
		got, ok := ParseBirthdate(entry)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseBirthdate(%q) = %v, %v", entry, got, ok)
		}
	}

	for _, entry := range []string{"31/02/2020", "29/02/2021", "2020-13-01", "1990/03/14", "14.03.1990", "1-3-1990", ""} {
		if _, ok := ParseBirthdate(entry); ok {
			t.Errorf("ParseBirthdate(%q) accepted", entry)
		}
	}

	if _, ok := ParseBirthdate("29/02/2020"); !ok {
		t.Error("leap day rejected")
	}
}

func TestMakeBox(t *testing.T) {
	box := MakeBox("Hello", "World")
	lines := strings.Split(box, "\n")
	if len(lines) != 4 {
		t.Fatalf("box has %d lines:\n%s", len(lines), box)
	}
	if !strings.HasPrefix(lines[0], "    ╔") || !strings.HasSuffix(lines[0], "╗") {
		t.Fatalf("top border = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Hello") || !strings.Contains(lines[2], "World") {
		t.Fatalf("content missing:\n%s", box)
	}
	if got := strings.Count(lines[0], "═"); got != menuWidth {
		t.Fatalf("inner width = %d, want %d", got, menuWidth)
	}
}

func TestAskName_RepromptsUntilValid(t *testing.T) {
	p, out := newTestPrompter("\nAda Lovelace\nAda\n")

	name, err := p.AskName()
	if err != nil {
		t.Fatalf("AskName: %v", err)
	}
	if name != "Ada" {
		t.Fatalf("name = %q", name)
	}
	text := out.String()
	if !strings.Contains(text, "hide & seek") {
		t.Error("empty-name message missing")
	}
	if !strings.Contains(text, "only your first name") {
		t.Error("malformed-name message missing")
	}
}

func TestAskName_InputClosed(t *testing.T) {
	p, _ := newTestPrompter("")
	if _, err := p.AskName(); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("err = %v, want ErrInputClosed", err)
	}
}

func TestAskBirthdate(t *testing.T) {
	p, out := newTestPrompter("yesterday\n31/02/2000\n01/01/2030\n 19/10/2024 \n")

	date, err := p.AskBirthdate("Ada", today)
	if err != nil {
		t.Fatalf("AskBirthdate: %v", err)
	}
	if !date.Equal(today) {
		t.Fatalf("date = %v, want today", date)
	}

	text := out.String()
	for _, msg := range []string{"Nice to meet you, Ada!", "Invalid format", "does not exist", "in the future"} {
		if !strings.Contains(text, msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}

func TestShowResults(t *testing.T) {
	p, out := newTestPrompter("")
	p.ShowResults("Ada", time.Date(1994, time.October, 19, 0, 0, 0, 0, time.UTC), 1560)

	text := out.String()
	if !strings.Contains(text, "19 October 1994") {
		t.Error("formatted birthdate missing")
	}
	if !strings.Contains(text, "1560 full weeks.") {
		t.Error("weeks count missing")
	}
}

func TestAskContinue(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
		invalid bool
	}{
		{"yes\n", nil, false},
		{"Y\n", nil, false},
		{"No\n", ErrAborted, false},
		{"n\n", ErrAborted, false},
		{"maybe\nyes\n", nil, true},
		{"maybe\n", ErrInputClosed, true},
	}

	for _, tt := range tests {
		p, out := newTestPrompter(tt.input)
		err := p.AskContinue("Ada")
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("AskContinue(%q) err = %v, want %v", tt.input, err, tt.wantErr)
		}
		if got := strings.Contains(out.String(), "Invalid input!"); got != tt.invalid {
			t.Errorf("AskContinue(%q) invalid message shown = %v", tt.input, got)
		}
		if errors.Is(tt.wantErr, ErrAborted) && !strings.Contains(out.String(), "Goodbye!") {
			t.Errorf("AskContinue(%q) did not say goodbye", tt.input)
		}
	}
}

func TestChooseLocation(t *testing.T) {
	p, out := newTestPrompter("3\nabc\n2\n")
	choice, err := p.ChooseLocation()
	if err != nil {
		t.Fatalf("ChooseLocation: %v", err)
	}
	if choice != ByCountry {
		t.Fatalf("choice = %v, want ByCountry", choice)
	}
	if strings.Count(out.String(), "Please enter 1 or 2.") != 2 {
		t.Fatalf("expected two invalid-choice messages:\n%s", out.String())
	}
}

func TestAskContinentExpectancy(t *testing.T) {
	lookup := fakeLookup{}
	for i, c := range expectancy.Continents {
		lookup[c] = float64(70 + i)
	}

	p, out := newTestPrompter("0\n8\n12\n3\n")
	years, err := p.AskContinentExpectancy(lookup)
	if err != nil {
		t.Fatalf("AskContinentExpectancy: %v", err)
	}
	if years != 72 {
		t.Fatalf("years = %v, want 72 for %s", years, expectancy.Continents[2])
	}
	if strings.Count(out.String(), "Invalid choice") != 3 {
		t.Fatalf("expected three invalid-choice messages")
	}
}

func TestAskContinentExpectancy_MissingContinentIsFatal(t *testing.T) {
	p, _ := newTestPrompter("1\n1\n")
	_, err := p.AskContinentExpectancy(fakeLookup{})
	if !errors.Is(err, expectancy.ErrUnknownLocation) {
		t.Fatalf("err = %v, want ErrUnknownLocation", err)
	}
}

func TestAskCountryExpectancy(t *testing.T) {
	p, out := newTestPrompter("Atlantis\nFrance\n")
	years, err := p.AskExpectancy(ByCountry, fakeLookup{"France": 83})
	if err != nil {
		t.Fatalf("AskExpectancy: %v", err)
	}
	if years != 83 {
		t.Fatalf("years = %v", years)
	}
	if !strings.Contains(out.String(), "Invalid country name") {
		t.Error("unknown-country message missing")
	}
}

func TestAskCountryExpectancy_OtherErrorsReturned(t *testing.T) {
	boom := errors.New("boom")
	p, _ := newTestPrompter("France\n")
	_, err := p.AskCountryExpectancy(lookupFunc(func(string) (float64, error) { return 0, boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

type lookupFunc func(string) (float64, error)

func (f lookupFunc) Lookup(name string) (float64, error) { return f(name) }

func TestCongratulateAndGoodbye(t *testing.T) {
	p, out := newTestPrompter("")
	p.Congratulate("Ada")
	p.Goodbye()
	text := out.String()
	if !strings.Contains(text, "Congratulations, Ada") || !strings.Contains(text, "you filled all the squares!") {
		t.Error("congratulation missing")
	}
	if !strings.Contains(text, "Your chart is ready") {
		t.Error("goodbye missing")
	}
}
