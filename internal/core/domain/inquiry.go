package domain

import "time"

type InquiryKind string

const (
	InquiryContact    InquiryKind = "contact"
	InquiryNewsletter InquiryKind = "newsletter"
)

// Inquiry is a contact-form message or a newsletter subscription.
type Inquiry struct {
	Kind       InquiryKind
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
}
