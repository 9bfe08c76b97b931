package mailer

import "gopkg.in/gomail.v2"

// SMTPMailer sends transactional mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

func (m *SMTPMailer) SendWelcomeEmail(toEmail, name string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Welcome to Pazarlio")
	msg.SetBody("text/plain", "Hi "+name+", your account has been created. You can start posting listings right away.")

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
