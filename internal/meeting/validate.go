package meeting

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"social-scheduler-api/internal/apperr"
)

const (
	maxTitle     = 40
	maxLocation  = 40
	maxURL       = 100
	maxTypeTitle = 50
)

func checkLen(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		if min == 0 {
			return apperr.InvalidArg(fmt.Sprintf("%s must be at most %d characters", field, max))
		}
		return apperr.InvalidArg(fmt.Sprintf("%s must be %d-%d characters", field, min, max))
	}
	return nil
}

func checkFields(title, typeTitle, location *string, url *string) error {
	if title != nil {
		if err := checkLen("title", strings.TrimSpace(*title), 1, maxTitle); err != nil {
			return err
		}
	}
	if typeTitle != nil {
		if err := checkLen("type", strings.TrimSpace(*typeTitle), 1, maxTypeTitle); err != nil {
			return err
		}
	}
	if location != nil {
		if err := checkLen("location", strings.TrimSpace(*location), 1, maxLocation); err != nil {
			return err
		}
	}
	if url != nil {
		if err := checkLen("location_url", *url, 0, maxURL); err != nil {
			return err
		}
	}
	return nil
}
