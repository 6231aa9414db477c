package models

import "strings"

// PersonRole defines allowed roles in the system
type PersonRole string

const (
	RoleCustomer   PersonRole = "CUSTOMER"
	RoleConsultant PersonRole = "CONSULTANT"
)

// Person is a customer or consultant record owned by the backend.
// Archived soft-deletes a customer; consultants are never archived.
type Person struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Address     string     `json:"address"`
	PersonRole  PersonRole `json:"personRole"`
	Archived    bool       `json:"archived"`
}

// FullName returns "firstName lastName", trimmed. Safe on a nil person,
// so a missing customer or consultant renders as a placeholder instead
// of panicking.
func (p *Person) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
