package users

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const (
	minPasswordLength = 8
	phoneNumberLength = 11
	passwordSymbols   = "@$!%*?&."
)

var validate = validator.New()

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return shared.RequiredField("email")
	}
	if err := validate.Var(email, "email"); err != nil {
		return shared.ValidationError(shared.MsgEmailFormat)
	}
	return nil
}

// validatePassword requires lower, upper, digit and symbol characters drawn
// only from letters, digits and passwordSymbols.
func validatePassword(password string) error {
	if password == "" {
		return shared.RequiredField("password")
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return shared.ValidationError(shared.MsgPasswordPolicy, minPasswordLength)
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return shared.ValidationError(shared.MsgPasswordPolicy, minPasswordLength)
		}
	}
	if len(password) < minPasswordLength || !lower || !upper || !digit || !symbol {
		return shared.ValidationError(shared.MsgPasswordPolicy, minPasswordLength)
	}
	return nil
}

func validatePhoneNumber(phone string) error {
	if phone == "" {
		return shared.RequiredField("phone_number")
	}
	if len(phone) != phoneNumberLength {
		return shared.ValidationError(shared.MsgPhoneLength, phoneNumberLength)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return shared.RequiredField("_id")
	}
	return nil
}

func normalizeRoleIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, shared.ValidationError(shared.MsgFieldType, "roles", "positive id")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
