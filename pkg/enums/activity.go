package enums

import "fmt"

// ActivityType tags an activity log entry with its originating domain.
type ActivityType string

const (
	ActivityTypeOrder   ActivityType = "ORDER"
	ActivityTypeProduct ActivityType = "PRODUCT"
	ActivityTypeVendor  ActivityType = "VENDOR"
	ActivityTypeShop    ActivityType = "SHOP"
	ActivityTypeSystem  ActivityType = "SYSTEM"
)

var validActivityTypes = []ActivityType{
	ActivityTypeOrder,
	ActivityTypeProduct,
	ActivityTypeVendor,
	ActivityTypeShop,
	ActivityTypeSystem,
}

// String implements fmt.Stringer.
func (t ActivityType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ActivityType.
func (t ActivityType) IsValid() bool {
	for _, candidate := range validActivityTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseActivityType converts raw input into an ActivityType.
func ParseActivityType(value string) (ActivityType, error) {
	for _, candidate := range validActivityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity type %q", value)
}
