package comms

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/pkg/formatting"
)

// Sender delivers a message on a channel.
type Sender interface {
	Send(recipient string, channel audit.Channel, subject, body string)
}

// Acknowledgement selects one of the two owner pings.
type Acknowledgement int

const (
	// RequestSent tells the owner the renewal was sent for review/approval.
	RequestSent Acknowledgement = iota
	// Confirmation confirms the owner's acknowledgment was logged.
	Confirmation
)

// Notifier composes and sends every workflow notification.
type Notifier struct {
	drafter *Drafter
	sender  Sender
}

// NewNotifier creates a notifier.
func NewNotifier(drafter *Drafter, sender Sender) *Notifier {
	return &Notifier{drafter: drafter, sender: sender}
}

// ExpiryNotice asks the document owner to submit an updated version. It is
// addressed to owner, which is the fallback identity when the document's
// owner email is not on the roster.
func (n *Notifier) ExpiryNotice(ctx context.Context, doc documents.Document, owner staff.Record) Message {
	msg := n.drafter.Draft(ctx,
		owner.Name,
		doc.Title,
		formatting.FormatDate(doc.ExpiryDate),
		fmt.Sprintf("Document expiry notification for %s. Requires submission of updated document for review.", doc.Title),
	)
	n.sender.Send(owner.Email, audit.ChannelEmail, msg.Subject, msg.Body)
	return msg
}

// ReviewRequest asks the reviewer to review the owner's submission.
func (n *Notifier) ReviewRequest(ctx context.Context, title, ownerName string, reviewer staff.Record) Message {
	msg := n.drafter.Draft(ctx,
		reviewer.Name,
		title,
		"N/A",
		fmt.Sprintf("A new document submission (%s) by %s requires your review.", title, ownerName),
	)
	n.sender.Send(reviewer.Email, audit.ChannelEmail, msg.Subject, msg.Body)
	return msg
}

// ApprovalRequest asks the credentialing approver for final sign-off.
func (n *Notifier) ApprovalRequest(ctx context.Context, applicantName, specialty string, approver staff.Record) Message {
	msg := n.drafter.Draft(ctx,
		approver.Name,
		fmt.Sprintf("C&P Application for Dr. %s", applicantName),
		"ASAP",
		fmt.Sprintf(
			"Final Credentialing and Privileging (C&P) request for Dr. %s (%s). Application is fully compliant and awaits final sign-off.",
			applicantName, specialty,
		),
	)
	n.sender.Send(approver.Email, audit.ChannelCredentialing, msg.Subject, msg.Body)
	return msg
}

// Acknowledge sends one of the owner pings. No advisor is involved.
func (n *Notifier) Acknowledge(owner staff.Record, title string, kind Acknowledgement) Message {
	var msg Message
	switch kind {
	case RequestSent:
		msg = Message{
			Subject: fmt.Sprintf("Request sent for '%s'", title),
			Body:    fmt.Sprintf("Hi %s, your request for '%s' has been successfully sent for review/approval.", owner.Name, title),
		}
	default:
		msg = Message{
			Subject: fmt.Sprintf("Acknowledgment confirmation for '%s'", title),
			Body:    fmt.Sprintf("Thank you, %s. Your acknowledgment of '%s' has been logged in the system.", owner.Name, title),
		}
	}
	n.sender.Send(owner.Email, audit.ChannelWhatsApp, msg.Subject, msg.Body)
	return msg
}

// Rejection tells the applicant which documents are missing. No advisor is
// involved.
func (n *Notifier) Rejection(result credentialing.Result) Message {
	msg := Message{
		Subject: fmt.Sprintf("C&P Application Incomplete: %s", result.ApplicantName),
		Body: fmt.Sprintf(
			"Dear %s, your C&P application is missing the following documents: %s. Please resubmit.",
			result.ApplicantName, strings.Join(result.MissingItems, ", "),
		),
	}
	n.sender.Send(result.ApplicantEmail, audit.ChannelEmail, msg.Subject, msg.Body)
	return msg
}
