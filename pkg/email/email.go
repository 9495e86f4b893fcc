package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
	client    *http.Client
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name            string
	StoreURL        string
	VerificationURL string
	TrialDays       int
}

type PasswordResetData struct {
	ResetLink string
}

type TrialWarningData struct {
	Name         string
	StoreName    string
	DaysLeft     int
	TrialEndDate time.Time
}

type TrialExpiredData struct {
	Name      string
	StoreName string
}

type OrderNotificationData struct {
	StoreName    string
	OrderNumber  string
	CustomerName string
	Total        string
	ItemCount    int
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Resend API error (%d): %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *EmailService) SendWelcomeEmail(to string, data WelcomeEmailData) error {
	return s.sendTemplateEmail(to, "Welcome to Toko Digital", "welcome.html", data)
}

func (s *EmailService) SendPasswordResetEmail(to string, data PasswordResetData) error {
	return s.sendTemplateEmail(to, "Password Reset Request", "password_reset.html", data)
}

func (s *EmailService) SendTrialWarningEmail(to string, data TrialWarningData) error {
	subject := fmt.Sprintf("Your free trial ends in %d days", data.DaysLeft)
	return s.sendTemplateEmail(to, subject, "trial_warning.html", data)
}

func (s *EmailService) SendTrialExpiredEmail(to string, data TrialExpiredData) error {
	return s.sendTemplateEmail(to, "Your free trial has expired", "trial_expired.html", data)
}

func (s *EmailService) SendOrderNotificationEmail(to string, data OrderNotificationData) error {
	subject := fmt.Sprintf("New order %s", data.OrderNumber)
	return s.sendTemplateEmail(to, subject, "order_notification.html", data)
}
