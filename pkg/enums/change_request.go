package enums

import "fmt"

// ChangeRequestStatus represents the review state of a vendor change request.
type ChangeRequestStatus string

const (
	ChangeRequestStatusPending  ChangeRequestStatus = "Pending"
	ChangeRequestStatusApproved ChangeRequestStatus = "Approved"
	ChangeRequestStatusRejected ChangeRequestStatus = "Rejected"
)

var validChangeRequestStatuses = []ChangeRequestStatus{
	ChangeRequestStatusPending,
	ChangeRequestStatusApproved,
	ChangeRequestStatusRejected,
}

// String implements fmt.Stringer.
func (s ChangeRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChangeRequestStatus.
func (s ChangeRequestStatus) IsValid() bool {
	for _, candidate := range validChangeRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseChangeRequestStatus converts raw input into a ChangeRequestStatus.
func ParseChangeRequestStatus(value string) (ChangeRequestStatus, error) {
	for _, candidate := range validChangeRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change request status %q", value)
}

// ChangeRequestType categorises what a vendor is asking to change.
type ChangeRequestType string

const (
	ChangeRequestTypeUpdateInfo      ChangeRequestType = "UPDATE_INFO"
	ChangeRequestTypeStockAdjustment ChangeRequestType = "STOCK_ADJUSTMENT"
	ChangeRequestTypeOther           ChangeRequestType = "OTHER"
)

var validChangeRequestTypes = []ChangeRequestType{
	ChangeRequestTypeUpdateInfo,
	ChangeRequestTypeStockAdjustment,
	ChangeRequestTypeOther,
}

// String implements fmt.Stringer.
func (t ChangeRequestType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ChangeRequestType.
func (t ChangeRequestType) IsValid() bool {
	for _, candidate := range validChangeRequestTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseChangeRequestType converts raw input into a ChangeRequestType.
func ParseChangeRequestType(value string) (ChangeRequestType, error) {
	for _, candidate := range validChangeRequestTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change request type %q", value)
}
