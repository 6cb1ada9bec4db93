package mailing

import (
	"fmt"
	"strconv"

	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// VerificationBody renders the verify-email message pointing back at the
// app's verification endpoint.
func VerificationBody(name, token string) string {
	appURL := utils.GetConfig("APP_URL")
	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", appURL, token)
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to ShelfLife. Please verify your email by clicking "+
			"<a href=\"%s\">this link</a>.</p><p>The link expires in 24 hours.</p>",
		name, link,
	)
}
