package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDocumentExport(toEmail, documentTitle, markdown string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendDocumentExport mails a PRD export to a collaborator. The markdown
// rendering travels as an attachment so formatting survives mail clients.
func (s *emailService) SendDocumentExport(toEmail, documentTitle, markdown string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("PRD shared with you: %s", documentTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>A product requirements document has been shared with you.</p>
			<p>The full document is attached as markdown.</p>
		</div>
	`, documentTitle)

	m.SetBody("text/html", body)
	m.Attach("document.md", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write([]byte(markdown))
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send export to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Document export sent to %s\n", toEmail)
	return nil
}
