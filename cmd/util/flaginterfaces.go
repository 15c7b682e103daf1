package util

import (
	"strconv"
)

// SeedValue is a pflag.Value which sets an optional random seed.
// The seed stays nil unless the flag is given.
type SeedValue struct {
	P **int64
}

func (s *SeedValue) String() string {
	if s.P == nil || *s.P == nil {
		return ""
	}
	return strconv.FormatInt(**s.P, 10)
}

// Set parses the seed.
func (s *SeedValue) Set(raw string) error {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*s.P = &v
	return nil
}

// Type returns the name of this type.
func (*SeedValue) Type() string {
	return "int64"
}
