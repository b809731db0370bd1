package domain

import (
	"fmt"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
)

// EventStatus is the lifecycle state of a pending financial event or a site phase.
type EventStatus string

const (
	StatusPending    EventStatus = "pending"
	StatusVerified   EventStatus = "verified"
	StatusRejected   EventStatus = "rejected"
	StatusNotStarted EventStatus = "not_started"
	StatusCompleted  EventStatus = "completed"
)

// EventKind names the variants sharing the approval workflow.
type EventKind string

const (
	EventPurchase          EventKind = "purchase"
	EventMachineryRental   EventKind = "machinery_rental"
	EventClientTransaction EventKind = "client_transaction"
	EventPhase             EventKind = "phase"
)

// WorkflowAction is an event applied to a workflow state.
type WorkflowAction string

const (
	ActionRequest WorkflowAction = "request"
	ActionVerify  WorkflowAction = "verify"
	ActionReject  WorkflowAction = "reject"
)

type transitionKey struct {
	kind   EventKind
	from   EventStatus
	action WorkflowAction
}

// transitions is the single table of legal state changes for every workflow variant.
var transitions = map[transitionKey]EventStatus{
	{EventPurchase, StatusPending, ActionVerify}: StatusVerified,
	{EventPurchase, StatusPending, ActionReject}: StatusRejected,

	{EventMachineryRental, StatusPending, ActionVerify}: StatusVerified,
	{EventMachineryRental, StatusPending, ActionReject}: StatusRejected,

	{EventClientTransaction, StatusPending, ActionVerify}: StatusVerified,
	{EventClientTransaction, StatusPending, ActionReject}: StatusRejected,

	{EventPhase, StatusNotStarted, ActionRequest}: StatusPending,
	{EventPhase, StatusPending, ActionVerify}:     StatusCompleted,
	{EventPhase, StatusPending, ActionReject}:     StatusNotStarted,
}

// Transition returns the state reached by applying action to an event of kind in state from.
// Applying a resolving action to an event that has left pending yields ErrAlreadyResolved.
// Resolving one that still awaits its request, such as a not started phase, is invalid input.
func Transition(kind EventKind, from EventStatus, action WorkflowAction) (EventStatus, error) {
	if to, ok := transitions[transitionKey{kind, from, action}]; ok {
		return to, nil
	}
	if action != ActionRequest && from != StatusPending && !isRequestable(kind, from) && isKnownState(kind, from) {
		return "", fmt.Errorf("%w: %s is %s", apperrors.ErrAlreadyResolved, kind, from)
	}
	return "", fmt.Errorf("%w: cannot %s %s in state %q", apperrors.ErrValidation, action, kind, from)
}

func isRequestable(kind EventKind, status EventStatus) bool {
	_, ok := transitions[transitionKey{kind, status, ActionRequest}]
	return ok
}

func isKnownState(kind EventKind, status EventStatus) bool {
	for k, to := range transitions {
		if k.kind == kind && (k.from == status || to == status) {
			return true
		}
	}
	return false
}

// ResolveAction maps an approve flag onto the workflow action.
func ResolveAction(approve bool) WorkflowAction {
	if approve {
		return ActionVerify
	}
	return ActionReject
}

// NotificationStatusFor mirrors an event state onto the notification that tracks it.
func NotificationStatusFor(status EventStatus) NotificationStatus {
	switch status {
	case StatusVerified, StatusCompleted:
		return NotificationApproved
	case StatusRejected, StatusNotStarted:
		return NotificationRejected
	default:
		return NotificationPending
	}
}
