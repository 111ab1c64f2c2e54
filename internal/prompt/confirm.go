package prompt

import (
	"github.com/charmbracelet/huh"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// Terminal asks questions on the terminal, defaulting to no
type Terminal struct{}

// Confirm shows an interactive confirmation
func (Terminal) Confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	err := form.Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Always answers every question with its value
type Always bool

// Confirm returns the fixed answer
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Password asks for a secret on the terminal without echoing it
func Password(title string) (string, error) {
	var secret string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&secret).
		Run()
	if err != nil {
		return "", err
	}
	return secret, nil
}
