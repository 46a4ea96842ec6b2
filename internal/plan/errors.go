package plan

import "fmt"

// TitleCountMismatchError reports a chapter titles file whose entry count
// does not match the number of input parts.
type TitleCountMismatchError struct {
	Path string
	Want int
	Got  int
}

func (e *TitleCountMismatchError) Error() string {
	return fmt.Sprintf("chapter titles: %s contains %d titles but there are %d input files", e.Path, e.Got, e.Want)
}

// InvalidParameterError reports a user-supplied encoding parameter outside
// its valid range.
type InvalidParameterError struct {
	Name  string
	Value string
	Valid string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %s (valid: %s)", e.Name, e.Value, e.Valid)
}

// LengthMismatchError indicates the durations and titles handed to the
// timeline builder diverged in length. Upstream validation should make this
// unreachable.
type LengthMismatchError struct {
	Durations int
	Titles    int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("timeline: %d durations but %d titles", e.Durations, e.Titles)
}
