package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"loadshed-console-go/pkg/model"
)

// EmailConfig holds the configuration for the SMTP sender
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// EmailService sends outage schedule notifications to subscribed addresses
type EmailService struct {
	config EmailConfig
	db     *sqlx.DB

	notifyLock  sync.Mutex
	notifyCache map[string]time.Time
	cacheTTL    time.Duration
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig, db *sqlx.DB) *EmailService {
	return &EmailService{
		config:      config,
		db:          db,
		notifyCache: make(map[string]time.Time),
		cacheTTL:    10 * time.Minute,
	}
}

// AddSubscription registers a new alert recipient
func (s *EmailService) AddSubscription(req model.SubscriptionAddRequest) (int, error) {
	var id int
	err := s.db.QueryRow(`
        INSERT INTO alert_subscriptions (email, name, active, created_at)
        VALUES ($1, $2, true, $3)
        RETURNING id
    `, req.Email, req.Name, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListSubscriptions returns every alert recipient
func (s *EmailService) ListSubscriptions() ([]model.AlertSubscription, error) {
	subs := []model.AlertSubscription{}
	err := s.db.Select(&subs, `
        SELECT id, email, name, active, created_at
        FROM alert_subscriptions
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// SetSubscriptionActive toggles a recipient on or off
func (s *EmailService) SetSubscriptionActive(id int, active bool) error {
	_, err := s.db.Exec("UPDATE alert_subscriptions SET active = $1 WHERE id = $2", active, id)
	return err
}

// DeleteSubscription removes a recipient
func (s *EmailService) DeleteSubscription(id int) error {
	_, err := s.db.Exec("DELETE FROM alert_subscriptions WHERE id = $1", id)
	return err
}

var scheduleMailTmpl = template.Must(template.New("schedule").Parse(`
<h2>New load-shedding schedule published</h2>
<p>A schedule with {{len .Sessions}} session(s) was published for your area.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Day</th><th>Start</th><th>End</th><th>Stage</th></tr>
  {{range .Sessions}}
  <tr><td>{{.Day}}</td><td>{{.StartTime}}</td><td>{{.EndTime}}</td><td>{{.Level}}</td></tr>
  {{end}}
</table>
`))

// SchedulePublished notifies active subscribers about a new schedule. Runs
// in its own goroutine so the publish path never waits on SMTP.
func (s *EmailService) SchedulePublished(record model.ScheduleRecord) {
	go s.notifySchedule(record)
}

func (s *EmailService) notifySchedule(record model.ScheduleRecord) {
	if s.config.SMTPHost == "" {
		return
	}

	// Suppress repeated notifications for the same record
	s.notifyLock.Lock()
	now := time.Now()
	if last, ok := s.notifyCache[record.ID]; ok && now.Sub(last) < s.cacheTTL {
		s.notifyLock.Unlock()
		return
	}
	s.notifyCache[record.ID] = now
	s.notifyLock.Unlock()

	subs, err := s.ListSubscriptions()
	if err != nil {
		log.Printf("Failed to load alert subscriptions: %v", err)
		return
	}

	var body bytes.Buffer
	if err := scheduleMailTmpl.Execute(&body, record); err != nil {
		log.Printf("Failed to render schedule email: %v", err)
		return
	}

	subject := fmt.Sprintf("Load-shedding schedule update (%d sessions)", len(record.Sessions))
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		if err := s.sendEmail(sub.Email, subject, body.String()); err != nil {
			log.Printf("Failed to send schedule email to %s: %v", sub.Email, err)
		}
	}
}

func (s *EmailService) sendEmail(toEmail, subject, body string) error {
	from := s.config.FromEmail
	to := []string{toEmail}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	// smtp.SendMail handles STARTTLS automatically
	serverAddr := s.config.SMTPHost + ":" + s.config.SMTPPort
	if err := smtp.SendMail(serverAddr, auth, from, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent successfully to %s", toEmail)
	return nil
}
