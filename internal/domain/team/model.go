package team

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ConferenceEast = "East"
	ConferenceWest = "West"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Team is one NBA franchise. Abbreviation is the identity key used by the
// stats provider ("BOS", "LAL").
type Team struct {
	ID           int64  `validate:"gte=0"`
	Abbreviation string `validate:"required,len=3,uppercase"`
	Name         string `validate:"required,max=50"`
	Conference   string `validate:"omitempty,oneof=East West"`
	Division     string `validate:"omitempty,max=20"`
}

func (t Team) Validate() error {
	return validate.Struct(t)
}

// NormalizeAbbreviation upper-cases and trims a provider abbreviation.
func NormalizeAbbreviation(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
