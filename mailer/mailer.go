package mailer

import (
	"log"
	"net/smtp"
	"os"
)

// Send delivers one HTML email through the configured SMTP relay.
func Send(to, subject, htmlBody string) error {
	host := envOr("SMTP_HOST", "smtp.gmail.com")
	port := envOr("SMTP_PORT", "587")
	from := envOr("SMTP_FROM", "noreply@vastra.local")
	pass := os.Getenv("SMTP_PASS")

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody)

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// SendAsync fires the mail on a goroutine. Delivery failure is logged and never
// rolls back whatever state transition triggered the mail.
func SendAsync(to, subject, htmlBody string) {
	go func() {
		if err := Send(to, subject, htmlBody); err != nil {
			log.Printf("mailer: send to %s failed: %v", to, err)
		}
	}()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
