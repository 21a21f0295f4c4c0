package domain

import (
	"fmt"
	"strings"
)

// ParseDirection validates free-text direction input at the boundary.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// ParseEntryStatus validates free-text status input at the boundary.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch EntryStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case Draft:
		return Draft, nil
	case Posted:
		return Posted, nil
	case Cancelled:
		return Cancelled, nil
	}
	return "", fmt.Errorf("invalid entry status %q", s)
}

// ParseEntryType validates free-text entry type input at the boundary.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(strings.ToUpper(strings.TrimSpace(s))) {
	case Standard:
		return Standard, nil
	case Reversal:
		return Reversal, nil
	case Clearing:
		return Clearing, nil
	case Invoice:
		return Invoice, nil
	}
	return "", fmt.Errorf("invalid entry type %q", s)
}
