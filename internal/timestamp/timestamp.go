package timestamp

import "time"

// Layout matches Takeout-style activity labels such as
// "January 1, 2025 at 10:30" (24-hour clock).
const Layout = "January 2, 2006 at 15:04"

// Parse converts a time label into an absolute point in time. The boolean
// is false for any text that does not match the layout exactly; that is
// the common case, since the same label elements often carry unrelated
// text, and callers simply omit the record from the timestamp sequence.
func Parse(text string) (time.Time, bool) {
	t, err := time.Parse(Layout, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
