package enums

import "fmt"

// StoreLevel is the tier label assigned to store and customer accounts.
// Products list the levels eligible to adopt or buy them.
type StoreLevel string

const (
	StoreLevel800U  StoreLevel = "800U"
	StoreLevel1500U StoreLevel = "1500U"
	StoreLevel3000U StoreLevel = "3000U"
	StoreLevel5000U StoreLevel = "5000U"
)

var validStoreLevels = []StoreLevel{
	StoreLevel800U,
	StoreLevel1500U,
	StoreLevel3000U,
	StoreLevel5000U,
}

// String implements fmt.Stringer.
func (s StoreLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreLevel.
func (s StoreLevel) IsValid() bool {
	for _, candidate := range validStoreLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreLevel converts raw input into a StoreLevel.
func ParseStoreLevel(value string) (StoreLevel, error) {
	for _, candidate := range validStoreLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store level %q", value)
}
