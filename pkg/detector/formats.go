package detector

import "regexp"

// TimestampFormat represents a known chat export timestamp format.
type TimestampFormat struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern capturing the timestamp segment
	Layout     string         // Go time layout for parsing
	Example    string         // Example message line
	Ambiguous  bool           // True if a twin format reads the same digits in the other date order
}

// DefaultFormats returns the built-in export formats to detect.
// Month-first variants come before their day-first twins so they win ties.
func DefaultFormats() []*TimestampFormat {
	formats := []*TimestampFormat{
		{
			Name:       "US 12-hour with seconds",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}:\d{2} [AP]M): `,
			Layout:     "1/2/06, 3:04:05 PM",
			Example:    "2/24/16, 9:05:32 PM: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Day-first 12-hour with seconds",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2}:\d{2} [AP]M): `,
			Layout:     "2/1/06, 3:04:05 PM",
			Example:    "24/2/16, 9:05:32 PM: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "US 12-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2} [AP]M): `,
			Layout:     "1/2/06, 3:04 PM",
			Example:    "2/24/16, 9:05 PM: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Day-first 12-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{1,2}:\d{2} [AP]M): `,
			Layout:     "2/1/06, 3:04 PM",
			Example:    "24/2/16, 9:05 PM: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "US 24-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{2}:\d{2}): `,
			Layout:     "1/2/06, 15:04",
			Example:    "2/24/16, 21:05: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Day-first 24-hour",
			PatternStr: `^(\d{1,2}/\d{1,2}/\d{2}, \d{2}:\d{2}): `,
			Layout:     "2/1/06, 15:04",
			Example:    "24/2/16, 21:05: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Month-first 24-hour, four-digit year",
			PatternStr: `^(\d{2}/\d{2}/\d{4}, \d{2}:\d{2}): `,
			Layout:     "01/02/2006, 15:04",
			Example:    "02/24/2016, 21:05: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Day-first 24-hour, four-digit year",
			PatternStr: `^(\d{2}/\d{2}/\d{4}, \d{2}:\d{2}): `,
			Layout:     "02/01/2006, 15:04",
			Example:    "24/02/2016, 21:05: Alice: hello",
			Ambiguous:  true,
		},
		{
			Name:       "Year-first 24-hour with seconds",
			PatternStr: `^(\d{4}/\d{2}/\d{2}, \d{2}:\d{2}:\d{2}): `,
			Layout:     "2006/01/02, 15:04:05",
			Example:    "2016/02/24, 21:05:32: Alice: hello",
		},
	}

	// Compile all patterns
	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
