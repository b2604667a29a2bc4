// Package models defines the client onboarding entities and list parameters.
package models

import "time"

// ClientStatus is the lifecycle status of a client. Onboarding always creates
// ACTIVE clients; later status changes are out of this service's hands.
type ClientStatus string

const (
	StatusActive    ClientStatus = "ACTIVE"
	StatusInactive  ClientStatus = "INACTIVE"
	StatusSuspended ClientStatus = "SUSPENDED"
)

var validStatuses = map[ClientStatus]bool{
	StatusActive:    true,
	StatusInactive:  true,
	StatusSuspended: true,
}

// ParseStatus constructs a ClientStatus from external input.
func ParseStatus(s string) (ClientStatus, bool) {
	c := ClientStatus(s)
	return c, validStatuses[c]
}

// Client is a person registered with an agency. NationalID and Email (when
// present) are unique across all clients.
type Client struct {
	ID           int64
	NationalID   string
	FullName     string
	Email        string
	Phone        string
	Address      string
	DateOfBirth  *time.Time
	AgencyID     int64
	Status       ClientStatus
	RegisteredAt time.Time
	CreatedBy    *int64
}

// SortField is the closed enumeration of sortable list columns. Unrecognized
// input silently falls back to the name sort rather than erroring, so callers
// can never inject column expressions.
type SortField string

const (
	SortByName       SortField = "full_name"
	SortByNationalID SortField = "national_id"
	SortByEmail      SortField = "email"
	SortByRegistered SortField = "registered_at"
)

// ParseSortField maps external input onto the whitelist, defaulting to the
// name sort.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByNationalID, SortByEmail, SortByRegistered, SortByName:
		return SortField(s)
	default:
		return SortByName
	}
}

// SortOrder is asc or desc; anything else becomes asc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps external input onto asc/desc, defaulting to asc.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// AddClientRequest is the onboarding input before normalization.
type AddClientRequest struct {
	NationalID  string
	FullName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth *time.Time
	AgencyID    int64
	CreatedBy   *int64
}

// ListFilter restricts and orders a client listing. Search matches national
// id, name, email or phone case-insensitively.
type ListFilter struct {
	Status *ClientStatus
	Search string
	SortBy SortField
	Order  SortOrder
	Limit  int
	Offset int
}

// Page is one window of a client listing with the unwindowed total.
type Page struct {
	Total   int64
	Clients []Client
}
