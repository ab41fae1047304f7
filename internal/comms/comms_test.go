package comms_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/comms"
	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/internal/staff"
)

var runDate = time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)

type sent struct {
	recipient string
	channel   audit.Channel
	subject   string
	body      string
}

type outbox struct {
	messages []sent
}

func (o *outbox) Send(recipient string, channel audit.Channel, subject, body string) {
	o.messages = append(o.messages, sent{recipient, channel, subject, body})
}

func newNotifier(t *testing.T, a advisor.Advisor) (*comms.Notifier, *outbox, *audit.Activity) {
	t.Helper()
	journal := audit.NewActivity(&bytes.Buffer{}, runDate)
	p, _ := prompts.New(nil)
	box := &outbox{}
	return comms.NewNotifier(comms.NewDrafter(a, p, journal), box), box, journal
}

func TestFallbackMessage(t *testing.T) {
	tests := []struct {
		name        string
		context     string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "expiry lower case",
			context:     "Document expiry notification for Hand Hygiene Policy.",
			wantSubject: "ACTION REQUIRED: Document 'Hand Hygiene Policy' expires on 2025-03-15",
			wantBody: "Dear Ms. Lim,\n\nThis is an urgent reminder that your document, 'Hand Hygiene Policy', is due to expire on 2025-03-15. " +
				"Please submit the updated version for review immediately as the system requires your action to renew it.\n\n" +
				"Thank you,\nAI Document Control System",
		},
		{
			name:        "expiry mixed case",
			context:     "EXPIRY reminder",
			wantSubject: "ACTION REQUIRED: Document 'Hand Hygiene Policy' expires on 2025-03-15",
		},
		{
			name:        "generic",
			context:     "A new document submission requires your review.",
			wantSubject: "ACTION: Review/Approval Request for 'Hand Hygiene Policy'",
			wantBody: "Dear Ms. Lim,\n\nA new submission for 'Hand Hygiene Policy' requires your action. " +
				"Please log into the system to complete your review/approval. Thank you.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := comms.FallbackMessage("Ms. Lim", "Hand Hygiene Policy", "2025-03-15", tt.context)
			if msg.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", msg.Subject, tt.wantSubject)
			}
			if tt.wantBody != "" && msg.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", msg.Body, tt.wantBody)
			}
		})
	}
}

func TestDraftUsesAdvisor(t *testing.T) {
	a := advisor.Func(func(_ context.Context, req advisor.Request) (advisor.Response, error) {
		if req.Stage != prompts.StageDraft || !strings.Contains(req.Prompt, "Recipient Name: Ms. Lim") {
			t.Errorf("unexpected request: %+v", req)
		}
		return advisor.Response{Fields: map[string]any{"subject": "Renew now", "body": "Please renew."}}, nil
	})

	n, box, journal := newNotifier(t, a)
	doc := documents.Document{DocID: "D001", Title: "Hand Hygiene Policy", OwnerEmail: "lim@phmk.my", ExpiryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)}

	msg := n.ExpiryNotice(context.Background(), doc, staff.Record{Name: "Ms. Lim", Email: "lim@phmk.my"})

	if msg.Subject != "Renew now" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if len(box.messages) != 1 || box.messages[0].recipient != "lim@phmk.my" || box.messages[0].channel != audit.ChannelEmail {
		t.Errorf("sent = %+v", box.messages)
	}
	if journal.Fallbacks() != 0 {
		t.Errorf("Fallbacks() = %d, want 0", journal.Fallbacks())
	}
}

func TestExpiryNoticeAddressesOwnerRecord(t *testing.T) {
	n, box, _ := newNotifier(t, advisor.Unavailable())

	doc := documents.Document{Title: "Hand Hygiene Policy", OwnerEmail: "ghost@phmk.my", ExpiryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)}
	fallback := staff.Record{Name: "Puan Aminah", Email: "qmr@phmk.my"}

	n.ExpiryNotice(context.Background(), doc, fallback)
	n.Acknowledge(fallback, doc.Title, comms.RequestSent)

	for i, m := range box.messages {
		if m.recipient != "qmr@phmk.my" {
			t.Errorf("message %d recipient = %q, want qmr@phmk.my", i, m.recipient)
		}
	}
}

func TestNotificationsFallBack(t *testing.T) {
	n, box, journal := newNotifier(t, advisor.Unavailable())
	ctx := context.Background()

	doc := documents.Document{Title: "Hand Hygiene Policy", OwnerEmail: "lim@phmk.my", ExpiryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)}
	n.ExpiryNotice(ctx, doc, staff.Record{Name: "Ms. Lim", Email: "lim@phmk.my"})
	n.ReviewRequest(ctx, "Hand Hygiene Policy", "Ms. Lim", staff.Record{Name: "Dr. Chan", Email: "qmr@phmk.my"})
	n.ApprovalRequest(ctx, "Alice Tan", "Cardiology", staff.Record{Name: "Mr. Lee", Email: "lee@phmk.my"})

	want := []sent{
		{"lim@phmk.my", audit.ChannelEmail, "ACTION REQUIRED: Document 'Hand Hygiene Policy' expires on 2025-03-15", ""},
		{"qmr@phmk.my", audit.ChannelEmail, "ACTION: Review/Approval Request for 'Hand Hygiene Policy'", ""},
		{"lee@phmk.my", audit.ChannelCredentialing, "ACTION: Review/Approval Request for 'C&P Application for Dr. Alice Tan'", ""},
	}

	if len(box.messages) != len(want) {
		t.Fatalf("sent %d messages, want %d", len(box.messages), len(want))
	}
	for i, w := range want {
		got := box.messages[i]
		if got.recipient != w.recipient || got.channel != w.channel || got.subject != w.subject {
			t.Errorf("message %d = %+v, want %+v", i, got, w)
		}
	}
	if journal.Fallbacks() != 3 {
		t.Errorf("Fallbacks() = %d, want 3", journal.Fallbacks())
	}
}

func TestAcknowledge(t *testing.T) {
	n, box, _ := newNotifier(t, advisor.Unavailable())
	owner := staff.Record{Name: "Ms. Lim", Email: "lim@phmk.my"}

	n.Acknowledge(owner, "Blood Transfusion WI", comms.RequestSent)
	n.Acknowledge(owner, "Blood Transfusion WI", comms.Confirmation)

	want := []sent{
		{"lim@phmk.my", audit.ChannelWhatsApp, "Request sent for 'Blood Transfusion WI'",
			"Hi Ms. Lim, your request for 'Blood Transfusion WI' has been successfully sent for review/approval."},
		{"lim@phmk.my", audit.ChannelWhatsApp, "Acknowledgment confirmation for 'Blood Transfusion WI'",
			"Thank you, Ms. Lim. Your acknowledgment of 'Blood Transfusion WI' has been logged in the system."},
	}
	for i, w := range want {
		if box.messages[i] != w {
			t.Errorf("message %d = %+v, want %+v", i, box.messages[i], w)
		}
	}
}

func TestRejection(t *testing.T) {
	n, box, _ := newNotifier(t, advisor.Unavailable())

	n.Rejection(credentialing.Result{
		ApplicantName:  "Alice Tan",
		ApplicantEmail: "alice.tan@phmk.my",
		MissingItems:   []string{"Board Certification", "BLS Certificate"},
	})

	got := box.messages[0]
	if got.subject != "C&P Application Incomplete: Alice Tan" {
		t.Errorf("subject = %q", got.subject)
	}
	wantBody := "Dear Alice Tan, your C&P application is missing the following documents: Board Certification, BLS Certificate. Please resubmit."
	if got.body != wantBody {
		t.Errorf("body = %q, want %q", got.body, wantBody)
	}
	if got.recipient != "alice.tan@phmk.my" || got.channel != audit.ChannelEmail {
		t.Errorf("message = %+v", got)
	}
}
