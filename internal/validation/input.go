package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxEmailLength       = 254
	MaxPhoneLength       = 32
	MaxTitleLength       = 200
	MaxLocationLength    = 100
	MaxDescriptionLength = 5000
	MaxAddressLength     = 500
	MaxSkillLength       = 50
	MaxSkillsCount       = 20
)

// InvalidEmailMessage - сообщение, которое форма показывает под полем email.
const InvalidEmailMessage = "Please enter a valid email address"

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateRequired проверяет, что поле заполнено.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// ValidateLength проверяет длину строки.
func ValidateLength(field, value string, max int) error {
	if max > 0 && utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return apperror.Validation(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// ValidateRequiredText проверяет обязательное поле и его длину.
func ValidateRequiredText(field, value string, max int) error {
	if err := ValidateRequired(field, value); err != nil {
		return err
	}
	return ValidateLength(field, value, max)
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.Validation("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return apperror.Validation("email", InvalidEmailMessage)
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return apperror.Validation("email", InvalidEmailMessage)
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return apperror.Validation("email", InvalidEmailMessage)
	}
	if !emailLocalRegex.MatchString(localPart) || !emailDomainRegex.MatchString(domainPart) {
		return apperror.Validation("email", InvalidEmailMessage)
	}

	return nil
}

// ContactRules задаёт, какие контактные поля обязательны для конкретной формы.
type ContactRules struct {
	RequirePhone   bool
	RequireCompany bool
}

// ValidateContact проверяет контактные данные из формы.
func ValidateContact(c models.ContactInfo, rules ContactRules) error {
	if err := ValidateRequiredText("name", c.Name, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if rules.RequirePhone {
		if err := ValidateRequiredText("phone", c.Phone, MaxPhoneLength); err != nil {
			return err
		}
	}
	if rules.RequireCompany {
		if err := ValidateRequiredText("company", c.Company, MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePaymentMethod проверяет способ оплаты.
func ValidatePaymentMethod(method string) error {
	if err := ValidateRequired("payment_method", method); err != nil {
		return err
	}
	if _, ok := models.ValidPaymentMethods[method]; !ok {
		return apperror.Validation("payment_method", "payment_method must be one of card, bank, mobile")
	}
	return nil
}

// ValidateUserType проверяет тип участника листа ожидания.
func ValidateUserType(userType string) error {
	if _, ok := models.ValidUserTypes[userType]; !ok {
		return apperror.Validation("user_type", "user_type must be one of worker, employer, both")
	}
	return nil
}

// ValidateSkills проверяет массив навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return apperror.Validation("skills", fmt.Sprintf("at most %d skills are allowed", MaxSkillsCount))
	}
	for _, skill := range skills {
		if err := ValidateLength("skills", skill, MaxSkillLength); err != nil {
			return err
		}
	}
	return nil
}

// SplitSkills разбирает строку навыков через запятую.
func SplitSkills(raw string) []string {
	var skills []string
	seen := make(map[string]struct{})
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	return skills
}
