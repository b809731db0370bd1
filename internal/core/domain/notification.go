package domain

import "time"

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotifyPurchaseVerification NotificationType = "purchase_verification"
	NotifyPurchaseVerified     NotificationType = "purchase_verified"
	NotifyPurchaseRejected     NotificationType = "purchase_rejected"
	NotifyRentalVerification   NotificationType = "machinery_rental_verification"
	NotifyRentalVerified       NotificationType = "machinery_rental_verified"
	NotifyRentalRejected       NotificationType = "machinery_rental_rejected"
	NotifyPaymentVerification  NotificationType = "payment_verification"
	NotifyPaymentVerified      NotificationType = "payment_verified"
	NotifyPaymentRejected      NotificationType = "payment_rejected"
	NotifyPhaseApproval        NotificationType = "phase_approval"
	NotifyPhaseApproved        NotificationType = "phase_approved"
	NotifyPhaseRejected        NotificationType = "phase_rejected"
)

// NotificationStatus mirrors the state of the event a notification tracks.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationApproved NotificationStatus = "approved"
	NotificationRejected NotificationStatus = "rejected"
)

// Notification is a message to one user about one event.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	UserID         string             `json:"userID"`
	Type           NotificationType   `json:"type"`
	RelatedID      string             `json:"relatedID"`
	Message        string             `json:"message"`
	Status         NotificationStatus `json:"status"`
	IsRead         bool               `json:"isRead"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
