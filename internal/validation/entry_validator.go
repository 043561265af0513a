package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"saalisloki/internal/models"
)

// Field length limits for entry inputs.
const (
	maxInputLengthBig   = 100
	maxInputLengthSmall = 10
)

// ErrorKind identifies which validation rule an entry failed.
type ErrorKind int

const (
	KindMissingRequired ErrorKind = iota
	KindLureTooLong
	KindLureSpacing
	KindLureCharacterRun
	KindPlaceTooLong
	KindPlaceSpacing
	KindPlaceCharacterRun
	KindPersonTooLong
	KindPersonSpacing
	KindFishTooLong
	KindFishSpacing
	KindDateFormat
	KindCoordinatesFormat
)

// EntryError describes a single failed validation rule.
type EntryError struct {
	Kind    ErrorKind
	Message string
}

func (e *EntryError) Error() string {
	return e.Message
}

var (
	// One or more non-whitespace runs separated by exactly one space.
	wordPattern = regexp.MustCompile(`^\S+( \S+)*$`)
	// Ten or more consecutive characters outside the vowel set
	// (Finnish vowels included, both cases).
	nonVowelRun   = regexp.MustCompile(`[^aeiouyäöAEIOUYÄÖ]{10,}`)
	datePattern   = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	coordsPattern = regexp.MustCompile(`^-?[0-9]{1,2}\.[0-9]{2,10}, -?[0-9]{1,3}\.[0-9]{2,10}$`)
)

// repeatedRun reports whether s contains n or more identical consecutive
// characters. Done as a rune scan since RE2 has no backreferences.
func repeatedRun(s string, n int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if count > 0 && r == prev {
			count++
		} else {
			prev = r
			count = 1
		}
		if count >= n {
			return true
		}
	}
	return false
}

func nameOK(s string, allowEmpty bool) bool {
	if s == "" {
		return allowEmpty
	}
	return wordPattern.MatchString(s)
}

// ValidateEntry checks an entry against the input rules. Rules are
// evaluated in a fixed order and the first failure wins. Callers must
// normalize absent optional fields to "-" or "" before calling; the
// rules here assume every field holds at least an empty string.
func ValidateEntry(e models.Entry) error {
	if e.Fish == "" || e.Date == "" || e.Time == "" || e.Person == "" {
		return &EntryError{KindMissingRequired, "fish species, date, time or catcher name is missing"}
	}

	if utf8.RuneCountInString(e.Lure) > maxInputLengthBig {
		return &EntryError{KindLureTooLong, fmt.Sprintf("lure name may be at most %d characters long", maxInputLengthBig)}
	} else if !nameOK(e.Lure, true) {
		return &EntryError{KindLureSpacing, "separate the parts of the lure name with single spaces"}
	} else if nonVowelRun.MatchString(e.Lure) || repeatedRun(e.Lure, 5) {
		return &EntryError{KindLureCharacterRun, "lure name cannot contain 10 consonants or 5 identical characters in a row"}
	}

	if utf8.RuneCountInString(e.Place) > maxInputLengthBig {
		return &EntryError{KindPlaceTooLong, fmt.Sprintf("place name may be at most %d characters long", maxInputLengthBig)}
	} else if !nameOK(e.Place, true) {
		return &EntryError{KindPlaceSpacing, "separate the parts of the place name with single spaces"}
	} else if nonVowelRun.MatchString(e.Place) || repeatedRun(e.Place, 5) {
		return &EntryError{KindPlaceCharacterRun, "place name cannot contain 10 consonants or 5 identical characters in a row"}
	}

	if utf8.RuneCountInString(e.Person) > maxInputLengthSmall {
		return &EntryError{KindPersonTooLong, fmt.Sprintf("catcher name may be at most %d characters long", maxInputLengthSmall)}
	} else if !nameOK(e.Person, false) {
		return &EntryError{KindPersonSpacing, "separate the parts of the catcher name with single spaces"}
	}

	if utf8.RuneCountInString(e.Fish) > maxInputLengthSmall {
		return &EntryError{KindFishTooLong, fmt.Sprintf("fish species may be at most %d characters long", maxInputLengthSmall)}
	} else if !nameOK(e.Fish, false) {
		return &EntryError{KindFishSpacing, "separate the parts of the fish species with single spaces"}
	}

	if !datePattern.MatchString(e.Date) {
		return &EntryError{KindDateFormat, `invalid date format, expected "yyyy-mm-dd"`}
	}

	if e.Coordinates != "" && !coordsPattern.MatchString(e.Coordinates) {
		return &EntryError{KindCoordinatesFormat, `invalid coordinate format, expected "xx.xxxxxxx, yy.yyyyyyy" or empty (note the space)`}
	}

	return nil
}
