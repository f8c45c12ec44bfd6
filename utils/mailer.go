package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendResetPasswordEmail sends the password-reset link by SMTP as a
// multipart HTML + plain text message.
//
// When SMTP env vars are missing the mail is logged instead of sent so the
// reset flow keeps working in development.
func SendResetPasswordEmail(recipientEmail, resetURL string, expireMinutes int) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Foto Studio")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s reset-url:%s", recipientEmail, resetURL)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	resetURL = safe(resetURL)
	if !(strings.HasPrefix(resetURL, "http://") || strings.HasPrefix(resetURL, "https://")) {
		resetURL = "https://" + strings.TrimLeft(resetURL, "/")
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := "Reset Password Anda"
	boundary := "----=_FOTOSTUDIO_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Silakan buka link berikut untuk mereset password Anda:\n\n%s\n\n"+
			"Link ini akan kedaluwarsa dalam %d menit.\n",
		resetURL, expireMinutes,
	)

	htmlBody := fmt.Sprintf(
		`<p>Silakan klik link berikut untuk mereset password Anda: <a href="%s">Reset Password</a></p>`+
			`<p>Link ini akan kedaluwarsa dalam %d menit.</p>`,
		resetURL, expireMinutes,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("❌ Failed to send reset email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("📨 Reset email sent to %s", recipientEmail)
	return nil
}
