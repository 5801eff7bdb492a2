package service

import (
	"errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MobileRegion is the numbering plan mobile numbers are parsed against.
const MobileRegion = "IN"

// PasswordSpecials lists the characters that satisfy the special character
// requirement.
const PasswordSpecials = "!@#$%^&*"

// DefaultBlockedEmailDomains are refused at registration.
var DefaultBlockedEmailDomains = []string{"example.com", "test.com"}

// ReadOnlyProfileFields may appear in a profile response but never in an
// update.
var ReadOnlyProfileFields = []string{
	"id", "email", "role", "full_name", "password",
	"is_active", "is_staff", "is_superuser", "is_email_verified",
	"last_login", "date_joined", "last_updated",
}

// RegisterInput is a signup request.
type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	Bio          string `json:"bio"`
}

func (in *RegisterInput) normalize() {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	in.Bio = strings.TrimSpace(in.Bio)
}

// Validate checks the input after normalization. blocked lists refused email
// domains.
func (in RegisterInput) Validate(blocked []string) error {
	return fromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, validation.Length(1, 255), is.Email, validation.By(notBlockedDomain(blocked))),
		validation.Field(&in.Password, validation.Required, validation.By(passwordComplexity)),
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.MobileNumber, validation.By(validMobile)),
		validation.Field(&in.Bio, validation.Length(0, 500)),
	))
}

// ProfileUpdate is a partial update; nil fields are left untouched. An empty
// MobileNumber removes the number.
type ProfileUpdate struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	MobileNumber *string `json:"mobile_number"`
	Bio          *string `json:"bio"`
}

func (u *ProfileUpdate) normalize() {
	for _, p := range []*string{u.FirstName, u.LastName, u.MobileNumber, u.Bio} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

func (u ProfileUpdate) Validate() error {
	return fromValidation(validation.ValidateStruct(&u,
		validation.Field(&u.FirstName, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&u.LastName, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&u.MobileNumber, validation.By(validMobile)),
		validation.Field(&u.Bio, validation.Length(0, 500)),
	))
}

// RejectReadOnlyFields reports every key of a profile update body that names
// a read-only field.
func RejectReadOnlyFields(keys []string) error {
	ve := &ValidationError{}
	for _, k := range keys {
		for _, ro := range ReadOnlyProfileFields {
			if k == ro {
				ve.Add(k, "this field is read-only")
			}
		}
	}
	if ve.empty() {
		return nil
	}
	return ve
}

// PasswordChange is a request to replace the current password.
type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c PasswordChange) Validate() error {
	return fromValidation(validation.ValidateStruct(&c,
		validation.Field(&c.OldPassword, validation.Required),
		validation.Field(&c.NewPassword,
			validation.Required,
			validation.By(passwordComplexity),
			validation.By(func(v any) error {
				if stringValue(v) == c.OldPassword {
					return errors.New("new password must be different from the old password")
				}
				return nil
			}),
		),
	))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// titleCase capitalizes each word of a personal name.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// normalizeMobile returns the E.164 form of a number accepted by validMobile.
func normalizeMobile(s string) (string, error) {
	num, err := phonenumbers.Parse(s, MobileRegion)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

func passwordComplexity(v any) error {
	p := stringValue(v)
	if p == "" {
		return nil
	}
	if len([]rune(p)) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(p, unicode.IsDigit) {
		return errors.New("password must contain at least one number")
	}
	if !strings.ContainsAny(p, PasswordSpecials) {
		return errors.New("password must contain at least one special character (" + PasswordSpecials + ")")
	}
	return nil
}

func validMobile(v any) error {
	s := stringValue(v)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, MobileRegion)
	if err != nil || !phonenumbers.IsValidNumberForRegion(num, MobileRegion) {
		return errors.New("enter a valid Indian mobile number")
	}
	return nil
}

func notBlockedDomain(blocked []string) validation.RuleFunc {
	return func(v any) error {
		email := stringValue(v)
		_, domain, ok := strings.Cut(email, "@")
		if !ok {
			return nil
		}
		for _, b := range blocked {
			if strings.EqualFold(domain, strings.TrimSpace(b)) {
				return errors.New("registration with this email domain is not allowed")
			}
		}
		return nil
	}
}
