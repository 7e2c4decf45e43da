package utils

import (
	"log"

	"github.com/k3a/html2text"
	gomail "gopkg.in/gomail.v2"

	"savoria/initializers"
)

// SendEmail delivers a message best-effort: failures are logged, never
// returned, and an unconfigured SMTP host makes it a no-op.
func SendEmail(to, subject, htmlBody string) {
	config := initializers.AppConfig
	if config.SMTPHost == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", html2text.HTML2Text(htmlBody))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("Could not send email to", to, ":", err)
	}
}
