package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9+() -]{5,32}$`)
	reHex   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	reSKU   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 120 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// HexColor accepts the "#RRGGBB" form only.
func HexColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reHex.MatchString(s)
}

func SKU(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSKU.MatchString(s)
}

// ID validates an opaque resource identifier in a path or form value.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a required display name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, true
}

// Qty parses a quantity, clamped to [1,99].
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// Price parses a non-negative price; bad input reads as 0.
func Price(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// Float parses a non-negative measurement (dimensions, weight).
func Float(s string) float64 {
	return Price(s)
}

// ContactMethod normalizes to one of the accepted channels.
func ContactMethod(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "phone", "viber", "telegram":
		return s
	}
	return "phone"
}

// Index parses a zero-based cart line index; -1 when not a number.
func Index(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return -1
	}
	return n
}
