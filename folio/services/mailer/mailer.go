// Package mailer sends the contact-form notification emails. Modeled after
// the site's original notify-on-new-message function: delivery is best
// effort and failures never surface to the visitor.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"folio/folio/config"
	"folio/folio/sources/psql/models"

	"gopkg.in/gomail.v2"
)

var bodyTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0;">
    <h1>New Message from Your Website</h1>
  </div>
  <div style="padding: 20px; border: 1px solid #ddd; border-top: none; border-radius: 0 0 5px 5px;">
    <div style="margin-bottom: 15px;">
      <div style="font-weight: bold;">From:</div>
      <div>{{.Name}} ({{.Email}})</div>
    </div>
    <div style="margin-bottom: 15px;">
      <div style="font-weight: bold;">Subject:</div>
      <div>{{.Subject}}</div>
    </div>
    <div style="margin-bottom: 15px;">
      <div style="font-weight: bold;">Message:</div>
      <div>{{.Message}}</div>
    </div>
  </div>
  <div style="margin-top: 30px; font-size: 12px; color: #777; text-align: center;">
    <p>This email was sent from your website's contact form.</p>
    <p>Received on: {{.ReceivedAt}}</p>
  </div>
</div>`))

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMailer(cfg config.Config) (*Mailer, error) {
	if cfg.SMTPUser == "" || cfg.DestinationEmail == "" {
		return nil, fmt.Errorf("mailer requires EMAIL_USER and DESTINATION_EMAIL")
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPUser,
		to:     cfg.DestinationEmail,
	}, nil
}

// Notify sends one notification for a stored contact message.
func (m *Mailer) Notify(msg models.ContactMessage) error {
	var body bytes.Buffer
	err := bodyTmpl.Execute(&body, struct {
		Name, Email, Subject, Message, ReceivedAt string
	}{
		Name:       msg.Name,
		Email:      msg.Email,
		Subject:    msg.Subject,
		Message:    msg.Message,
		ReceivedAt: msg.CreatedAt.Format(time.RFC1123),
	})
	if err != nil {
		return err
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.from, "Your Resume Website")
	mail.SetHeader("To", m.to)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", "New Contact Form Message: "+msg.Subject)
	mail.SetBody("text/html", body.String())
	return m.dialer.DialAndSend(mail)
}
