package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"bookstore/internal/pkg/errs"
)

const (
	MinNameLength    = 2
	MinAddressLength = 5
	MinPhoneDigits   = 10
	MaxPhoneDigits   = 11
)

var (
	numberRun  = regexp.MustCompile(`-?\d+`)
	digitRun   = regexp.MustCompile(`\d+`)
	nonDigits  = regexp.MustCompile(`\D`)
	errNoDigit = errors.New("no number found")

	// A bare run of 10 or 11 digits, or digit groups joined by single spaces,
	// dots or dashes.
	phoneRun     = regexp.MustCompile(`(?:^|\D)(\d{10,11})(?:\D|$)`)
	phoneGrouped = regexp.MustCompile(`\d+(?:[ .\-]\d+)+`)
)

// ParseQuantity reads a quantity from raw and checks it against maxStock.
// The first number in raw is taken, with its sign, so "-3" and "-3 cuốn"
// are both out of range.
//
//	ParseQuantity("2", 5)        // 2, nil
//	ParseQuantity("lấy 3 cuốn", 5) // 3, nil
//	ParseQuantity("10", 5)       // 0, ValueIsOutOfRangeError
func ParseQuantity(raw string, maxStock int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError("quantity")
	}

	token := numberRun.FindString(raw)
	if token == "" {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", errNoDigit)
	}
	quantity, err := strconv.Atoi(token)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}

	if quantity < 1 || quantity > maxStock {
		return 0, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxStock)
	}
	return quantity, nil
}

// ValidateName trims raw and requires at least MinNameLength characters.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errs.NewValueIsRequiredError("customer_name")
	}
	if n := utf8.RuneCountInString(name); n < MinNameLength {
		return "", errs.NewValueIsOutOfRangeError("customer_name length", n, MinNameLength, "unbounded")
	}
	return name, nil
}

// ValidatePhone keeps the digits of raw. The result must have 10 or 11
// digits and start with 0.
func ValidatePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}
	if n := len(digits); n < MinPhoneDigits || n > MaxPhoneDigits {
		return "", errs.NewValueIsOutOfRangeError("phone digits", n, MinPhoneDigits, MaxPhoneDigits)
	}
	if digits[0] != '0' {
		return "", errs.NewValueIsInvalidErrorWithCause("phone", errors.New("must start with 0"))
	}
	return digits, nil
}

// ExtractPhone finds the phone-shaped part of an utterance. A bare run of
// 10 or 11 digits wins over grouped digits. It returns "" when nothing in raw
// looks like a phone number.
//
//	ExtractPhone("sđt 0987654321, nhà số 5") // "0987654321"
//	ExtractPhone("gọi 098 765 4321 nhé")     // "098 765 4321"
func ExtractPhone(raw string) string {
	if m := phoneRun.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	for _, group := range phoneGrouped.FindAllString(raw, -1) {
		if n := len(nonDigits.ReplaceAllString(group, "")); n >= MinPhoneDigits && n <= MaxPhoneDigits {
			return group
		}
	}
	return ""
}

// ParsePhone validates the phone number found in an utterance. When nothing
// phone-shaped is found the first run of digits is validated so the error
// names what is wrong with it. Separate numbers are never joined.
func ParsePhone(raw string) (string, error) {
	token := ExtractPhone(raw)
	if token == "" {
		token = digitRun.FindString(raw)
	}
	return ValidatePhone(token)
}

// ValidateAddress trims raw and requires at least MinAddressLength characters.
func ValidateAddress(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	if address == "" {
		return "", errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(address); n < MinAddressLength {
		return "", errs.NewValueIsOutOfRangeError("address length", n, MinAddressLength, "unbounded")
	}
	return address, nil
}
