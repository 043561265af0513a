package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"saalisloki/internal/models"
	"saalisloki/internal/validation"
)

// validEntry returns an entry that passes every rule; tests mutate the
// field under test.
func validEntry() models.Entry {
	return models.Entry{
		Fish:        "hauki",
		Date:        "2022-07-20",
		Length:      "65",
		Weight:      "2.0",
		Lure:        "jesse-vaappu",
		Place:       "ruuhiniemi",
		Coordinates: "",
		Time:        "13.00",
		Person:      "Akseli",
	}
}

func assertKind(t *testing.T, err error, kind validation.ErrorKind) {
	t.Helper()
	var ve *validation.EntryError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, kind, ve.Kind)
	assert.NotEmpty(t, ve.Message)
}

func TestValidateEntry_Valid(t *testing.T) {
	assert.NoError(t, validation.ValidateEntry(validEntry()))

	e := validEntry()
	e.Lure = "-"
	e.Place = "-"
	assert.NoError(t, validation.ValidateEntry(e))

	e = validEntry()
	e.Lure = ""
	e.Place = ""
	assert.NoError(t, validation.ValidateEntry(e), "lure and place have an empty-string exemption")
}

func TestValidateEntry_RequiredFields(t *testing.T) {
	for _, field := range []string{"fish", "date", "time", "person"} {
		e := validEntry()
		switch field {
		case "fish":
			e.Fish = ""
		case "date":
			e.Date = ""
		case "time":
			e.Time = ""
		case "person":
			e.Person = ""
		}
		assertKind(t, validation.ValidateEntry(e), validation.KindMissingRequired)
	}
}

func TestValidateEntry_LureRules(t *testing.T) {
	e := validEntry()
	e.Lure = strings.Repeat("ab", 51) // 102 characters
	assertKind(t, validation.ValidateEntry(e), validation.KindLureTooLong)

	e = validEntry()
	e.Lure = "mikado  saira" // two spaces
	assertKind(t, validation.ValidateEntry(e), validation.KindLureSpacing)

	e = validEntry()
	e.Lure = " saira"
	assertKind(t, validation.ValidateEntry(e), validation.KindLureSpacing)

	e = validEntry()
	e.Lure = "aaaaa" // 5 identical characters
	assertKind(t, validation.ValidateEntry(e), validation.KindLureCharacterRun)

	e = validEntry()
	e.Lure = "aaaa bbbb" // 4 identical, allowed
	assert.NoError(t, validation.ValidateEntry(e))

	e = validEntry()
	e.Lure = "bcdfghjklm" // 10 consecutive non-vowels
	assertKind(t, validation.ValidateEntry(e), validation.KindLureCharacterRun)

	e = validEntry()
	e.Lure = "bcdfyghjklm" // y breaks the run
	assert.NoError(t, validation.ValidateEntry(e))

	e = validEntry()
	e.Lure = "bcdfähjklm" // ä counts as a vowel too
	assert.NoError(t, validation.ValidateEntry(e))
}

func TestValidateEntry_PlaceRules(t *testing.T) {
	e := validEntry()
	e.Place = strings.Repeat("a", 101)
	assertKind(t, validation.ValidateEntry(e), validation.KindPlaceTooLong)

	e = validEntry()
	e.Place = "palosaaren  kivikko"
	assertKind(t, validation.ValidateEntry(e), validation.KindPlaceSpacing)

	e = validEntry()
	e.Place = "kkkkkotasaari"
	assertKind(t, validation.ValidateEntry(e), validation.KindPlaceCharacterRun)
}

func TestValidateEntry_PersonRules(t *testing.T) {
	e := validEntry()
	e.Person = "Maximiliano" // 11 characters
	assertKind(t, validation.ValidateEntry(e), validation.KindPersonTooLong)

	e = validEntry()
	e.Person = "Väinämöine" // 10 runes, more bytes
	assert.NoError(t, validation.ValidateEntry(e))

	e = validEntry()
	e.Person = " " // non-empty but no word, and no empty exemption
	assertKind(t, validation.ValidateEntry(e), validation.KindPersonSpacing)
}

func TestValidateEntry_FishRules(t *testing.T) {
	e := validEntry()
	e.Fish = "kirjolohi x" // 11 characters
	assertKind(t, validation.ValidateEntry(e), validation.KindFishTooLong)

	e = validEntry()
	e.Fish = "a b" // words separated by single spaces are fine
	assert.NoError(t, validation.ValidateEntry(e))

	e = validEntry()
	e.Fish = "a  b"
	assertKind(t, validation.ValidateEntry(e), validation.KindFishSpacing)
}

func TestValidateEntry_DateFormat(t *testing.T) {
	bad := []string{"5.5.2022", "2022-7-20", "20220720", "2022-07-20x", "vvvv-kk-pp"}
	for _, d := range bad {
		e := validEntry()
		e.Date = d
		assertKind(t, validation.ValidateEntry(e), validation.KindDateFormat)
	}

	e := validEntry()
	e.Date = "9999-99-99" // shape only, no calendar check
	assert.NoError(t, validation.ValidateEntry(e))
}

func TestValidateEntry_Coordinates(t *testing.T) {
	good := []string{
		"",
		"63.12, 21.61",
		"-63.12, -121.61",
		"7.1234567890, 121.61",
	}
	for _, coords := range good {
		e := validEntry()
		e.Coordinates = coords
		assert.NoError(t, validation.ValidateEntry(e), "coordinates %q", coords)
	}

	bad := []string{
		"63.12,21.61",   // no space after comma
		"63.12,  21.61", // two spaces
		"63.1, 21.61",   // too few fraction digits
		"123.12, 21.61", // too many integer digits on latitude
		"63.12, 21.61 ", // trailing garbage
		"63, 21",
		"abc",
	}
	for _, coords := range bad {
		e := validEntry()
		e.Coordinates = coords
		assertKind(t, validation.ValidateEntry(e), validation.KindCoordinatesFormat)
	}
}

func TestValidateEntry_FirstFailureWins(t *testing.T) {
	e := validEntry()
	e.Lure = strings.Repeat("a", 101)
	e.Date = "not-a-date"
	// The lure rule runs before the date rule, so its error is the one
	// reported.
	assertKind(t, validation.ValidateEntry(e), validation.KindLureTooLong)
}
