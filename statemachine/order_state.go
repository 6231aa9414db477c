package statemachine

import (
	"errors"

	"relocation-admin-api/models"
)

// Transition defines a valid state change for an order or a service item.
// Every change is performed by a consultant, so no actor dimension is needed.
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition.
// Order-level and item-level status share the same lifecycle; an order's
// status is never derived from its items' statuses.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusInProgress},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusInProgress, To: models.StatusCompleted},
	{From: models.StatusInProgress, To: models.StatusCancelled},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether a status may move from one state to another.
// Keeping the current status is always allowed.
func CanTransition(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
