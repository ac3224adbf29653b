package validator

import (
	"errors"
	"time"
)

func ValidateDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errors.New("invalid arrival date")
	}
	return t, nil
}
