package common

import (
	"errors"

	"picturestream/logger"
)

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	var msg string
	for _, err := range errs {
		if err != nil {
			if msg != "" {
				msg += ", "
			}
			msg += err.Error()
		}
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}

// Recover absorbs a panic in the calling goroutine. Deferred by background
// jobs so a panicking run never takes the scheduler down.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
