package forecast

import "fmt"

// InvalidProfileError marks an input profile whose values would force a
// division by zero or a negative cycle. Fatal: the engine aborts the report.
type InvalidProfileError struct {
	Profile string
	ID      string
	Field   string
	Reason  string
}

func (e *InvalidProfileError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid %s profile %q: %s %s", e.Profile, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s profile: %s %s", e.Profile, e.Field, e.Reason)
}

func invalidProfile(profile, id, field, reason string) error {
	return &InvalidProfileError{Profile: profile, ID: id, Field: field, Reason: reason}
}
