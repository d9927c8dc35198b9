package domain

import "errors"

// Domain errors.
var (
	ErrValidation              = errors.New("required field is missing or empty")
	ErrEventNotFoundOrInactive = errors.New("event not found or inactive")
	ErrCapacityExceeded        = errors.New("event has reached maximum capacity")
	ErrAlreadyRegistered       = errors.New("attendee is already registered for this event")
	ErrNotRegistered           = errors.New("attendee is not registered for this event")
	ErrAlreadyAttended         = errors.New("attendance already recorded for this attendee")
	ErrUnauthenticated         = errors.New("not authenticated")
	ErrAttendeeNotFound        = errors.New("attendee not found")
	ErrEventNotFound           = errors.New("event not found")
	ErrCannotReduceCapacity    = errors.New("cannot reduce capacity below current registrations")
)
