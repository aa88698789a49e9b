package application

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Draft holds the raw form fields of a candidate application, exactly as the
// caller received them. Nothing is trimmed or parsed before validation.
type Draft struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	MonthlyIncome string `json:"monthly_income"`
	MoveInDate    string `json:"move_in_date"`
	Notes         string `json:"notes"`
}

// Fields carries the parsed values of a draft that passed validation.
type Fields struct {
	FullName      string
	Email         string
	Phone         string
	MonthlyIncome int64
	MoveInDate    time.Time
	Notes         string
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigits    = regexp.MustCompile(`[^\d]`)
)

const moveInDateLayout = "2006-01-02"

// Validate checks the draft against the submission rules for a property with
// the given monthly rent. It collects every violation instead of stopping at
// the first; an empty map means the draft passes and fields holds the parsed
// values. Callers must surface every message in the map.
func (d Draft) Validate(rent int, now time.Time) (Fields, map[string]string) {
	errs := map[string]string{}
	fields := Fields{Notes: d.Notes}

	fullName := strings.TrimSpace(d.FullName)
	if fullName == "" {
		errs["fullName"] = "Full name is required"
	} else {
		fields.FullName = fullName
	}

	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email is invalid"
	default:
		fields.Email = email
	}

	phone := strings.TrimSpace(d.Phone)
	if phone == "" {
		errs["phone"] = "Phone number is required"
	} else if digits := nonDigits.ReplaceAllString(phone, ""); len(digits) < 7 || len(digits) > 15 {
		errs["phone"] = "Phone number must be between 7-15 digits"
	} else {
		fields.Phone = phone
	}

	incomeRaw := strings.TrimSpace(d.MonthlyIncome)
	if incomeRaw == "" {
		errs["monthlyIncome"] = "Monthly income is required"
	} else {
		// The form accepts decimal amounts; cents are dropped after the check.
		income, err := strconv.ParseFloat(incomeRaw, 64)
		minIncome := int64(rent) * 3
		if err != nil || income < float64(minIncome) {
			errs["monthlyIncome"] = fmt.Sprintf("Monthly income should be at least 3x the rent ($%d)", minIncome)
		} else {
			fields.MonthlyIncome = int64(income)
		}
	}

	moveInRaw := strings.TrimSpace(d.MoveInDate)
	if moveInRaw == "" {
		errs["moveInDate"] = "Move-in date is required"
	} else {
		moveIn, err := time.ParseInLocation(moveInDateLayout, moveInRaw, now.Location())
		if err != nil || !moveIn.After(now) {
			errs["moveInDate"] = "Move-in date must be in the future"
		} else {
			fields.MoveInDate = moveIn
		}
	}

	return fields, errs
}
