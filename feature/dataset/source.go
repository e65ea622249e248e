package dataset

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

var (
	// ErrUnknownScheme is returned when no loader handles a source identifier.
	ErrUnknownScheme = errors.New("unknown dataset scheme")

	// ErrInvalidSource is returned for identifiers that cannot be parsed.
	ErrInvalidSource = errors.New("invalid dataset identifier")
)

// Source is a parsed dataset identifier of the form <scheme>:<target>[?params].
type Source struct {
	Scheme string
	Target string
	Params url.Values
}

// ParseSource splits a dataset identifier such as "sql:users?order=id",
// "s3:exports/users.csv" or "synthetic:100?seed=7".
func ParseSource(id string) (Source, error) {
	u, err := url.Parse(id)
	if err != nil {
		return Source{}, fmt.Errorf("%w %q: %v", ErrInvalidSource, id, err)
	}
	if u.Scheme == "" || u.Opaque == "" {
		return Source{}, fmt.Errorf("%w %q: expected <scheme>:<target>", ErrInvalidSource, id)
	}
	return Source{Scheme: u.Scheme, Target: u.Opaque, Params: u.Query()}, nil
}

// IntParam returns the named integer parameter, or def when absent.
func (s Source) IntParam(name string, def int64) (int64, error) {
	raw := s.Params.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s parameter %q: %v", ErrInvalidSource, name, raw, err)
	}
	return v, nil
}
