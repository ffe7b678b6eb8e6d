package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"

	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows and dispatches the
// matching email. Email dispatch is fire-and-forget: state transitions never
// wait for it and never roll back when it fails.
type NotificationService struct {
	db *gorm.DB

	// sendMail is swappable for tests.
	sendMail func(to []string, subject, html string) error
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, sendMail: config.SendMail}
}

var emailTemplate = template.Must(template.New("notification").Parse(`
<p>Dear {{.Name}},</p>
<p>{{.Body}}</p>
{{if .Deadline}}<p>Deadline: <strong>{{.Deadline}}</strong></p>{{end}}
<p>ICMBNT 2026 Editorial Office</p>
`))

type emailData struct {
	Name     string
	Body     string
	Deadline string
}

// Notify stores an in-app notification and dispatches the email asynchronously.
func (s *NotificationService) Notify(user models.User, title, body, kind string, paperID *int) {
	notif := models.Notification{
		UserID:   uint(user.UserID),
		Title:    title,
		Message:  body,
		Type:     kind,
		IsRead:   false,
		CreateAt: time.Now(),
	}
	if paperID != nil {
		id := uint(*paperID)
		notif.RelatedPaperID = &id
	}
	if err := s.db.Create(&notif).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", user.UserID, err)
	}

	s.dispatchEmail(user, title, body, "")
}

// NotifyWithDeadline behaves like Notify and includes a deadline in the email.
func (s *NotificationService) NotifyWithDeadline(user models.User, title, body, kind string, paperID *int, deadline time.Time) {
	notif := models.Notification{
		UserID:   uint(user.UserID),
		Title:    title,
		Message:  body,
		Type:     kind,
		IsRead:   false,
		CreateAt: time.Now(),
	}
	if paperID != nil {
		id := uint(*paperID)
		notif.RelatedPaperID = &id
	}
	if err := s.db.Create(&notif).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", user.UserID, err)
	}

	s.dispatchEmail(user, title, body, deadline.Format("2 January 2006"))
}

func (s *NotificationService) dispatchEmail(user models.User, subject, body, deadline string) {
	if user.Email == "" {
		return
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, emailData{
		Name:     user.FullName(),
		Body:     body,
		Deadline: deadline,
	}); err != nil {
		log.Printf("Failed to render notification email: %v", err)
		return
	}

	go func(to, subject, html string) {
		if err := s.sendMail([]string{to}, subject, html); err != nil {
			depErr := &ExternalDependencyError{
				Op:  fmt.Sprintf("send notification email to %s", to),
				Err: err,
			}
			log.Printf("Notification dispatch failed (state change kept): %v", depErr)
		}
	}(user.Email, subject, buf.String())
}

// NotifyAssignment tells a reviewer about a new review assignment.
func (s *NotificationService) NotifyAssignment(reviewer models.User, paper models.Paper, round int, deadline time.Time) {
	body := fmt.Sprintf("You have been assigned to review paper %s (%q), round %d.",
		paper.PaperNumber, paper.Title, round)
	s.NotifyWithDeadline(reviewer, "New review assignment", body, "info", &paper.PaperID, deadline)
}

// NotifyDecision tells the author about an editorial decision.
func (s *NotificationService) NotifyDecision(author models.User, paper models.Paper, decision, comments string) {
	body := fmt.Sprintf("An editorial decision has been made on your paper %s (%q): %s.",
		paper.PaperNumber, paper.Title, decision)
	if comments != "" {
		body += " " + comments
	}
	kind := "info"
	switch decision {
	case models.DecisionAccept:
		kind = "success"
	case models.DecisionReject:
		kind = "error"
	case models.DecisionRequestRevision:
		kind = "warning"
	}
	s.Notify(author, "Editorial decision", body, kind, &paper.PaperID)
}

// NotifyRevisionRequested tells the author a revision is required.
func (s *NotificationService) NotifyRevisionRequested(author models.User, paper models.Paper, message string, deadline time.Time) {
	body := fmt.Sprintf("A revision of your paper %s (%q) has been requested. %s",
		paper.PaperNumber, paper.Title, message)
	s.NotifyWithDeadline(author, "Revision required", body, "warning", &paper.PaperID, deadline)
}

// NotifyRevisionSubmitted tells the handling editor an author resubmitted.
func (s *NotificationService) NotifyRevisionSubmitted(editor models.User, paper models.Paper, revisionNumber int) {
	body := fmt.Sprintf("Revision %d of paper %s (%q) has been submitted and is ready for the next review round.",
		revisionNumber, paper.PaperNumber, paper.Title)
	s.Notify(editor, "Revision submitted", body, "info", &paper.PaperID)
}
