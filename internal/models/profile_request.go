package models

// RequestStatus is the lifecycle state of a profile update request.
type RequestStatus string

const (
	StatusNone     RequestStatus = "NONE"
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// Terminal reports whether the status can no longer change.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether moving from s to next is a legal step.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	switch s {
	case StatusNone:
		return next == StatusPending
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	default:
		return false
	}
}

// ProfileUpdateRequest is a customer-submitted change awaiting admin review.
// Nil requested fields were not part of the request.
type ProfileUpdateRequest struct {
	ID                   int64         `json:"id"`
	CustomerID           int64         `json:"customerId,omitempty"`
	CustomerName         string        `json:"customerName,omitempty"`
	CustomerEmail        string        `json:"customerEmail,omitempty"`
	Customer             *Customer     `json:"customer,omitempty"`
	RequestedFullName    *string       `json:"requestedFullName,omitempty"`
	RequestedEmail       *string       `json:"requestedEmail,omitempty"`
	RequestedPhoneNumber *string       `json:"requestedPhoneNumber,omitempty"`
	RequestedAddress     *string       `json:"requestedAddress,omitempty"`
	Status               RequestStatus `json:"status"`
	RequestedAt          *Timestamp    `json:"requestedAt,omitempty"`
	ReviewedAt           *Timestamp    `json:"reviewedAt,omitempty"`
	ReviewedBy           *string       `json:"reviewedBy,omitempty"`
}

// OwnerID returns the owning customer id from whichever shape the backend sent.
func (r ProfileUpdateRequest) OwnerID() int64 {
	if r.CustomerID != 0 {
		return r.CustomerID
	}
	if r.Customer != nil {
		return r.Customer.ID
	}
	return 0
}
