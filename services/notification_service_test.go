package services

import (
	"errors"
	"testing"
	"time"

	"conference-review-api/models"

	"github.com/stretchr/testify/assert"
)

type sentMail struct {
	to      []string
	subject string
	html    string
}

func stubbedNotifier(err error) (*NotificationService, chan sentMail) {
	sent := make(chan sentMail, 1)
	svc := &NotificationService{
		sendMail: func(to []string, subject, html string) error {
			sent <- sentMail{to: to, subject: subject, html: html}
			return err
		},
	}
	return svc, sent
}

func TestDispatchEmailRendersTemplate(t *testing.T) {
	svc, sent := stubbedNotifier(nil)
	user := models.User{UserID: 3, Email: "author@example.com", UserFname: "Ada", UserLname: "Lovelace"}

	svc.dispatchEmail(user, "Revision required", "Please revise your paper.", "15 March 2026")

	select {
	case mail := <-sent:
		assert.Equal(t, []string{"author@example.com"}, mail.to)
		assert.Equal(t, "Revision required", mail.subject)
		assert.Contains(t, mail.html, "Dear Ada Lovelace")
		assert.Contains(t, mail.html, "Please revise your paper.")
		assert.Contains(t, mail.html, "15 March 2026")
	case <-time.After(2 * time.Second):
		t.Fatal("email was not dispatched")
	}
}

func TestDispatchEmailOmitsEmptyDeadline(t *testing.T) {
	svc, sent := stubbedNotifier(nil)
	user := models.User{UserID: 3, Email: "author@example.com", UserFname: "Ada"}

	svc.dispatchEmail(user, "Editorial decision", "Your paper has been accepted.", "")

	select {
	case mail := <-sent:
		assert.NotContains(t, mail.html, "Deadline")
	case <-time.After(2 * time.Second):
		t.Fatal("email was not dispatched")
	}
}

func TestDispatchEmailSkipsUsersWithoutEmail(t *testing.T) {
	svc, sent := stubbedNotifier(nil)

	svc.dispatchEmail(models.User{UserID: 3}, "subject", "body", "")

	select {
	case <-sent:
		t.Fatal("no email should be sent without an address")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatchEmailFailureDoesNotPropagate(t *testing.T) {
	svc, sent := stubbedNotifier(errors.New("smtp unreachable"))
	user := models.User{UserID: 3, Email: "author@example.com", UserFname: "Ada"}

	// Must not panic or block; the failure is logged and swallowed.
	svc.dispatchEmail(user, "subject", "body", "")

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("email was not dispatched")
	}
}
