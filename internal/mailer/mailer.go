package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	config Config
}

func New(config Config) *Mailer {
	return &Mailer{config: config}
}

// Send delivers an HTML email. With no SMTP host configured it runs in
// mock mode and only logs, which keeps local development mail-free.
func (m *Mailer) Send(to, subject, body string) error {
	if m.config.Host == "" {
		log.Info().
			Str("to", to).
			Str("subject", subject).
			Int("body_bytes", len(body)).
			Msg("mock mail delivery")
		return nil
	}

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, subject, body))

	return smtp.SendMail(addr, auth, m.config.From, []string{to}, msg)
}

// OTPBody renders the verification-code email.
func OTPBody(name, code string, minutes int) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>Verify your email</h2>
			<p>Hi %s,</p>
			<p>Your CampusBites verification code is:</p>
			<h1 style="letter-spacing: 4px;">%s</h1>
			<p>The code expires in %d minutes. If you did not request it, ignore this email.</p>
			<br>
			<p>CampusBites Canteen</p>
		</body>
		</html>
	`, name, code, minutes)
}
