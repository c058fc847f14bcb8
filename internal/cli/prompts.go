package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// confirmPrompt asks a yes/no question on the terminal. Ctrl-C counts as no.
func confirmPrompt(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
