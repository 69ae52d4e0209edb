// Package workflow implements the status lifecycle of visitor and parcel
// records: the per-type status vocabulary, the transition table, and the
// role/ownership rules that gate who may apply a transition.
package workflow

import (
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleResident      Role = "Resident"
	RoleSecurityGuard Role = "Security Guard"
	RoleAdmin         Role = "Admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleResident, RoleSecurityGuard, RoleAdmin:
		return true
	}
	return false
}

type RecordType string

const (
	TypeVisitor RecordType = "Visitor"
	TypeParcel  RecordType = "Parcel"
)

func ValidType(t RecordType) bool {
	return t == TypeVisitor || t == TypeParcel
}

type Status string

const (
	// Visitor lifecycle.
	StatusNew      Status = "New"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusEntered  Status = "Entered"
	StatusExited   Status = "Exited"

	// Parcel lifecycle.
	StatusReceived     Status = "Received"
	StatusAcknowledged Status = "Acknowledged"
	StatusCollected    Status = "Collected"
)

var (
	ErrUnknownType       = errors.New("unknown record type")
	ErrInvalidStatus     = errors.New("status does not exist for this record type")
	ErrInvalidTransition = errors.New("transition not allowed from the current status")
	ErrNotPermitted      = errors.New("actor may not apply this transition")
)

// transitions is the full edge set per record type. A status missing from the
// inner map is terminal.
var transitions = map[RecordType]map[Status][]Status{
	TypeVisitor: {
		StatusNew:      {StatusApproved, StatusRejected},
		StatusApproved: {StatusEntered},
		StatusEntered:  {StatusExited},
	},
	TypeParcel: {
		StatusReceived:     {StatusAcknowledged},
		StatusAcknowledged: {StatusCollected},
	},
}

var statusSets = map[RecordType][]Status{
	TypeVisitor: {StatusNew, StatusApproved, StatusRejected, StatusEntered, StatusExited},
	TypeParcel:  {StatusReceived, StatusAcknowledged, StatusCollected},
}

var initialStatuses = map[RecordType]Status{
	TypeVisitor: StatusNew,
	TypeParcel:  StatusReceived,
}

// InitialStatus returns the status every freshly created record of the given
// type starts in.
func InitialStatus(t RecordType) (Status, error) {
	s, ok := initialStatuses[t]
	if !ok {
		return "", ErrUnknownType
	}
	return s, nil
}

// Statuses returns the full status vocabulary for a record type.
func Statuses(t RecordType) []Status {
	set := statusSets[t]
	out := make([]Status, len(set))
	copy(out, set)
	return out
}

func ValidStatus(t RecordType, s Status) bool {
	for _, v := range statusSets[t] {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether the edge from -> to exists for the type.
func CanTransition(t RecordType, from, to Status) bool {
	for _, next := range transitions[t][from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(t RecordType, s Status) bool {
	return ValidStatus(t, s) && len(transitions[t][s]) == 0
}

// Actor is the authenticated identity attempting a transition.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Validate checks a requested transition in order: status-set membership,
// edge legality, then actor permission. Security Guards and Admins may apply
// any legal transition. Residents may only decide their own Visitor records,
// and only out of the initial status (approve or reject).
func Validate(actor Actor, t RecordType, residentID uuid.UUID, from, to Status) error {
	if !ValidType(t) {
		return ErrUnknownType
	}
	if !ValidStatus(t, to) {
		return ErrInvalidStatus
	}
	if !CanTransition(t, from, to) {
		return ErrInvalidTransition
	}

	switch actor.Role {
	case RoleSecurityGuard, RoleAdmin:
		return nil
	case RoleResident:
		if t != TypeVisitor || actor.ID != residentID {
			return ErrNotPermitted
		}
		if from != StatusNew || (to != StatusApproved && to != StatusRejected) {
			return ErrNotPermitted
		}
		return nil
	default:
		return ErrNotPermitted
	}
}
