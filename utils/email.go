package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type PurchaseConfirmationData struct {
	Username    string
	EventName   string
	TicketType  string
	Quantity    int
	TotalPrice  string
	TicketCodes []string
	DetailLink  string
}

// SendPurchaseConfirmationEmail sends the confirmation asynchronously so the
// purchase response is not delayed by SMTP.
func SendPurchaseConfirmationEmail(to string, data PurchaseConfirmationData) {
	go func() {
		tmplPath := "templates/purchase_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your tickets for "+data.EventName)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email: %v", err)
		}
	}()
}

// SendPasswordResetEmail mails the reset link for a requested password reset.
func SendPasswordResetEmail(to, token string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")
		baseURL := os.Getenv("FRONTEND_BASE_URL")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Password reset request")
		m.SetBody("text/html",
			"<p>A password reset was requested for your account.</p>"+
				"<p><a href=\""+baseURL+"/reset-password?token="+token+"\">Reset your password</a></p>"+
				"<p>The link expires in 30 minutes. If you did not request this, ignore this email.</p>")

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send reset email: %v", err)
		}
	}()
}
