package log

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// WithSpinner runs fn while showing a progress spinner with the given
// message. The final line marks success or failure; fn's error is returned
// unchanged.
func WithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		return fmt.Errorf("failed to color spinner: %w", err)
	}

	s.Start()
	defer s.Stop()

	if err := fn(); err != nil {
		s.FinalMSG = message + " \033[31m[failed]\033[0m\n"

		return err
	}

	s.FinalMSG = message + " \033[32m[done]\033[0m\n"

	return nil
}
