package store

import "errors"

var (
	ErrConflict  = errors.New("conflict")
	ErrNotFound  = errors.New("not found")
	ErrSlotTaken = errors.New("slot already booked")
)
