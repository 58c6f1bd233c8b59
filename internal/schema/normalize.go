package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevent/internal/domain"
)

// space matches what ECMAScript treats as whitespace: ASCII \s plus \v,
// Unicode space separators, line/paragraph separators and the BOM.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	slugStripRegex  = regexp.MustCompile(`[^\w` + space + `-]`)
	slugSpaceRegex  = regexp.MustCompile(`[` + space + `]+`)
	slugHyphenRegex = regexp.MustCompile(`-+`)

	time24Regex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
	time12Regex = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5][0-9])\s?(AM|PM)$`)
)

// Slugify derives the URL slug for a title: lowercase, word characters only,
// whitespace runs become a single hyphen, no leading, trailing or repeated hyphens.
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	s = slugHyphenRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02 Jan 2006",
	"Jan 2 2006",
	"January 2 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
}

// CanonicalDate parses raw with the supported layouts and returns its UTC
// calendar date as YYYY-MM-DD.
func CanonicalDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ErrMalformedDate
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Format(time.DateOnly), nil
		}
	}
	return "", domain.ErrMalformedDate
}

// CanonicalTime converts a 24-hour "H:MM" or 12-hour "H:MM AM/PM" time to zero-padded "HH:MM".
func CanonicalTime(raw string) (string, error) {
	if m := time24Regex.FindStringSubmatch(raw); m != nil {
		hours, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hours, m[2]), nil
	}
	m := time12Regex.FindStringSubmatch(raw)
	if m == nil {
		return "", domain.ErrMalformedTime
	}
	hours, _ := strconv.Atoi(m[1])
	switch period := strings.ToUpper(m[3]); {
	case period == "PM" && hours != 12:
		hours += 12
	case period == "AM" && hours == 12:
		hours = 0
	}
	return fmt.Sprintf("%02d:%s", hours, m[2]), nil
}
