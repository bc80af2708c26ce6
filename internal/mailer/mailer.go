// Package mailer sends transactional email for contact form submissions.
//
// Mail delivery is strictly best-effort: the database write is the durability
// contract, so every error here is logged and swallowed by the caller.
package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	gomail "github.com/wneessen/go-mail"

	"straterra-backend/internal/model"
)

// Mailer holds SMTP transport configuration read from the environment.
type Mailer struct {
	Host       string
	Port       int
	Secure     bool
	User       string
	Pass       string
	From       string
	AdminEmail string
}

// NewFromEnv builds a Mailer from EMAIL_* environment variables.
func NewFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = os.Getenv("EMAIL_USER")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = os.Getenv("EMAIL_USER")
	}

	return &Mailer{
		Host:       os.Getenv("EMAIL_HOST"),
		Port:       port,
		Secure:     strings.EqualFold(os.Getenv("EMAIL_SECURE"), "true"),
		User:       os.Getenv("EMAIL_USER"),
		Pass:       os.Getenv("EMAIL_PASS"),
		From:       from,
		AdminEmail: adminEmail,
	}
}

// Enabled reports whether SMTP credentials are configured. When false the
// contact workflow skips mail entirely and the submission still succeeds.
func (m *Mailer) Enabled() bool {
	return m != nil && m.User != "" && m.Pass != ""
}

func (m *Mailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.User),
		gomail.WithPassword(m.Pass),
		gomail.WithTimeout(15 * time.Second),
	}
	if m.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	return gomail.NewClient(m.Host, opts...)
}

// SendContactNotification mails the operator about a new contact submission.
func (m *Mailer) SendContactNotification(sub *model.ContactSubmission) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(m.AdminEmail); err != nil {
		return err
	}
	if err := msg.ReplyTo(sub.Email); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("New Contact Form Message from %s", sub.Name))
	msg.SetBodyString(gomail.TypeTextHTML, notificationBody(sub))

	return m.send(msg)
}

// SendContactAutoReply mails an acknowledgement back to the submitter.
func (m *Mailer) SendContactAutoReply(sub *model.ContactSubmission) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(sub.Email); err != nil {
		return err
	}
	msg.Subject("Thank you for contacting STRATERRA")
	msg.SetBodyString(gomail.TypeTextHTML, autoReplyBody(sub))

	return m.send(msg)
}

func (m *Mailer) send(msg *gomail.Msg) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	if err := c.DialAndSend(msg); err != nil {
		log.Printf("mail delivery failed: %v", err)
		return err
	}
	return nil
}

func notificationBody(sub *model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString(fmt.Sprintf("<p><strong>Name:</strong> %s</p>", sub.Name))
	b.WriteString(fmt.Sprintf("<p><strong>Email:</strong> %s</p>", sub.Email))
	if sub.Phone != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Phone:</strong> %s</p>", sub.Phone))
	}
	if sub.Service != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Service Interested:</strong> %s</p>", sub.Service))
	}
	b.WriteString("<p><strong>Message:</strong></p>")
	b.WriteString(fmt.Sprintf("<div>%s</div>", strings.ReplaceAll(sub.Message, "\n", "<br>")))
	b.WriteString(fmt.Sprintf(
		"<p><small>IP: %s<br>User Agent: %s<br>Submission ID: %d</small></p>",
		sub.IPAddress, sub.UserAgent, sub.ID,
	))
	return b.String()
}

func autoReplyBody(sub *model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>Thank You for Contacting STRATERRA</h2>")
	b.WriteString(fmt.Sprintf("<p>Dear %s,</p>", sub.Name))
	b.WriteString("<p>We have received your message and will get back to you as soon as possible.</p>")
	b.WriteString("<p><strong>Your message:</strong></p>")
	b.WriteString(fmt.Sprintf("<div>%s</div>", strings.ReplaceAll(sub.Message, "\n", "<br>")))
	b.WriteString("<p>Best regards,<br>The STRATERRA Team</p>")
	return b.String()
}
