// Package intro runs the interactive questionnaire in front of the chart:
// greeting, name, birthdate, confirmation and location choice.
// Malformed input is answered with an explanation and asked again; only
// closed input or resource failures end a prompt with an error.
package intro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"lifeweeks/internal/features/expectancy"
	"lifeweeks/internal/features/weeks"
)

var (
	// ErrAborted is returned when the user declines to continue.
	ErrAborted = errors.New("aborted by user")
	// ErrInputClosed is returned when input ends before a valid answer.
	ErrInputClosed = errors.New("input closed")
)

var nameRegex = regexp.MustCompile(`^[A-Za-z'-]+$`)

type dateFormat struct {
	pattern *regexp.Regexp
	layout  string
}

var dateFormats = []dateFormat{
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "02-01-2006"},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
}

// ValidName reports whether name is a single first name: letters, apostrophes and hyphens.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// MatchesDateFormat reports whether entry has one of the accepted shapes.
func MatchesDateFormat(entry string) bool {
	for _, f := range dateFormats {
		if f.pattern.MatchString(entry) {
			return true
		}
	}
	return false
}

// ParseBirthdate parses dd/mm/yyyy, dd-mm-yyyy or yyyy-mm-dd. ok is false
// for any other shape and for dates that do not exist.
func ParseBirthdate(entry string) (date time.Time, ok bool) {
	for _, f := range dateFormats {
		if !f.pattern.MatchString(entry) {
			continue
		}
		t, err := time.Parse(f.layout, entry)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning!"
	case hour < 18:
		return "Good Afternoon!"
	default:
		return "Good Night!"
	}
}

// Lookup is the part of the expectancy dataset the prompts need.
type Lookup interface {
	Lookup(name string) (float64, error)
}

// Location is the user's choice of dataset granularity.
type Location int

const (
	ByContinent Location = 1
	ByCountry   Location = 2
)

// Prompter reads answers line by line from in and writes boxes to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ShowBox(lines ...string) {
	fmt.Fprintln(p.out, MakeBox(lines...))
}

func (p *Prompter) readLine() (string, error) {
	fmt.Fprint(p.out, "\n> ")
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) DisplayGreeting(now time.Time) {
	fmt.Fprintln(p.out)
	p.ShowBox(Greeting(now.Hour()), "Welcome to Life In Weeks Program!")
	fmt.Fprintln(p.out)
}

// AskName asks until a valid first name is given.
func (p *Prompter) AskName() (string, error) {
	p.ShowBox("Let's get started!", "What's your first name?")
	for {
		name, err := p.readLine()
		if err != nil {
			return "", err
		}
		switch {
		case name == "":
			p.ShowBox("Oops! It looks like your name is", "playing hide & seek. Can you reveal it?")
		case !ValidName(name):
			p.ShowBox("Please share only your first name,", "no spaces or extra words allowed!")
		default:
			return name, nil
		}
	}
}

// AskBirthdate asks until an existing, non-future date is given.
func (p *Prompter) AskBirthdate(name string, today time.Time) (time.Time, error) {
	fmt.Fprintln(p.out)
	p.ShowBox(
		fmt.Sprintf("Nice to meet you, %s!", name),
		"Please enter your birthdate",
		"in one of these formats:",
		"dd/mm/yyyy dd-mm-yyyy yyyy-mm-dd",
	)
	for {
		entry, err := p.readLine()
		if err != nil {
			return time.Time{}, err
		}
		fmt.Fprintln(p.out)

		date, ok := ParseBirthdate(entry)
		switch {
		case !MatchesDateFormat(entry):
			p.ShowBox("Error: Invalid format.", "Use: dd/mm/yyyy dd-mm-yyyy yyyy-mm-dd")
		case !ok:
			p.ShowBox("Error: That date does not exist!", "Please enter a valid date.")
		case date.After(weeks.Date(today)):
			p.ShowBox("Error: Your birthdate can't be", "in the future. Try again!")
		default:
			return date, nil
		}
	}
}

// ShowResults echoes the birthdate and the weeks lived so far.
func (p *Prompter) ShowResults(name string, birthdate time.Time, lived int) {
	p.ShowBox(fmt.Sprintf("Thank you, %s!", name), "Your birthdate is recorded as:", birthdate.Format("02 January 2006"))
	fmt.Fprintln(p.out)
	p.ShowBox("You have lived approximately", fmt.Sprintf("%d full weeks.", lived))
	fmt.Fprintln(p.out)
}

// AskContinue returns nil on yes and ErrAborted on no.
func (p *Prompter) AskContinue(name string) error {
	p.ShowBox(fmt.Sprintf("%s, are you ready", name), "to continue? (Yes/No)")
	for {
		answer, err := p.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "yes", "y":
			return nil
		case "no", "n":
			p.ShowBox("Thank you for choosing our program!", "Goodbye!")
			fmt.Fprintln(p.out)
			return ErrAborted
		default:
			p.ShowBox("Invalid input!", "Please enter 'Yes' or 'No'.")
		}
		fmt.Fprintln(p.out)
	}
}

// ChooseLocation asks whether to use continent or country data.
func (p *Prompter) ChooseLocation() (Location, error) {
	p.ShowBox(
		"LIFE EXPECTANCY MENU",
		"",
		"1   based on your CONTINENT (general)",
		"2   based on your COUNTRY (specific) ",
		"",
		"Enter 1 or 2 to make a selection",
	)
	for {
		choice, err := p.readLine()
		if err != nil {
			return 0, err
		}
		switch choice {
		case "1":
			return ByContinent, nil
		case "2":
			return ByCountry, nil
		default:
			p.ShowBox("Error: Invalid choice.", "Please enter 1 or 2.")
		}
	}
}

// AskContinentExpectancy shows the continent menu. A continent missing from
// the dataset is a data error and is returned, not re-asked.
func (p *Prompter) AskContinentExpectancy(ds Lookup) (float64, error) {
	lines := []string{"SELECT A CONTINENT", ""}
	for i, continent := range expectancy.Continents {
		lines = append(lines, fmt.Sprintf("%d   %-26s", i+1, continent))
	}
	lines = append(lines, "", fmt.Sprintf("Enter 1 to %d to make a selection", len(expectancy.Continents)))
	p.ShowBox(lines...)

	for {
		choice, err := p.readLine()
		if err != nil {
			return 0, err
		}
		idx := menuIndex(choice, len(expectancy.Continents))
		if idx < 0 {
			p.ShowBox("Error: Invalid choice.", fmt.Sprintf("Please enter a number 1 to %d.", len(expectancy.Continents)))
			continue
		}
		return ds.Lookup(expectancy.Continents[idx])
	}
}

// AskCountryExpectancy asks for a country name until the dataset knows it.
func (p *Prompter) AskCountryExpectancy(ds Lookup) (float64, error) {
	p.ShowBox("SELECT A COUNTRY", "", "Type in your country")
	for {
		country, err := p.readLine()
		if err != nil {
			return 0, err
		}
		years, err := ds.Lookup(country)
		if errors.Is(err, expectancy.ErrUnknownLocation) {
			p.ShowBox("Error: Invalid country name.", "Please check the spelling.")
			continue
		}
		return years, err
	}
}

// AskExpectancy dispatches on the chosen location kind.
func (p *Prompter) AskExpectancy(choice Location, ds Lookup) (float64, error) {
	if choice == ByContinent {
		return p.AskContinentExpectancy(ds)
	}
	return p.AskCountryExpectancy(ds)
}

// Congratulate is shown when the lived weeks overflow the chart.
func (p *Prompter) Congratulate(name string) {
	p.ShowBox(fmt.Sprintf("Congratulations, %s", name), "you filled all the squares!")
}

func (p *Prompter) Goodbye() {
	p.ShowBox("THANK YOU!", "", "Your chart is ready", "Good luck!")
}

func menuIndex(choice string, n int) int {
	if len(choice) != 1 || choice[0] < '1' || int(choice[0]-'0') > n {
		return -1
	}
	return int(choice[0]-'1')
}
