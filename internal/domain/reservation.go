// Package domain contains the core types for coordinating multi-party
// dining reservations: reservations, invites, and calendar commitments.
package domain

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

// Reservation lifecycle states.
const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCanceled  ReservationStatus = "canceled"
)

// IsValid reports whether the status is one of the known values.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCanceled:
		return true
	default:
		return false
	}
}

// Reservation is a proposed dinner owned by an organizer. It starts pending,
// confirms once every invite is accepted, and can be canceled by the
// organizer from either state. Canceled is terminal.
type Reservation struct {
	Entity
	OrganizerID       string            `json:"organizer_id"`
	RestaurantName    string            `json:"restaurant_name"`
	RestaurantAddress string            `json:"restaurant_address,omitempty"`
	StartsAt          time.Time         `json:"starts_at"` // UTC
	PartySize         int               `json:"party_size"`
	Status            ReservationStatus `json:"status"`
}

// CanTransitionTo reports whether moving to next is a legal edge.
// Legal edges: pending→confirmed, pending→canceled, confirmed→canceled.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCanceled
	case ReservationConfirmed:
		return next == ReservationCanceled
	default:
		return false
	}
}

// IsTerminal reports whether the reservation can no longer change state.
func (r *Reservation) IsTerminal() bool {
	return r.Status == ReservationCanceled
}
