package service

import (
	"strings"
	"time"

	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/domain"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

const minYearJoined = 1900

func missingFields(fields map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func validatePassword(password string) error {
	if len(password) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError("password is too long", map[string]any{"max_bytes": auth.MaxPasswordBytes})
	}
	return nil
}

func validateGender(g domain.Gender) error {
	if !g.Valid() {
		return apperrors.NewValidationError("gender must be one of male, female, other", map[string]any{"gender": string(g)})
	}
	return nil
}

func validateYearJoined(year int, now time.Time) error {
	if year < minYearJoined || year > now.Year()+1 {
		return apperrors.NewValidationError("year_joined is out of range", map[string]any{"year_joined": year})
	}
	return nil
}
