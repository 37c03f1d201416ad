package emailService

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
)

const (
	subjectRegistrationConfirmation  = "Confirm your MoneyTracker account"
	templateRegistrationConfirmation = "registration_confirmation.html"
	subjectResetPassword             = "Reset your MoneyTracker password"
	templateResetPassword            = "reset_password.html"
)

type EmailData interface {
	TemplateFileName() string
	Subject() string
}

type EmailSender interface {
	QueueEmail(to string, data EmailData)
}

type RegistrationConfirmationData struct {
	UserName string
	Code     string
}

func (r RegistrationConfirmationData) TemplateFileName() string {
	return templateRegistrationConfirmation
}

func (r RegistrationConfirmationData) Subject() string {
	return subjectRegistrationConfirmation
}

type ResetPasswordData struct {
	UserName string
	Code     string
}

func (r ResetPasswordData) TemplateFileName() string {
	return templateResetPassword
}

func (r ResetPasswordData) Subject() string {
	return subjectResetPassword
}

type EmailService struct {
	from         string
	password     string
	templatesDir string
	smtpHost     string
	smtpPort     string
	taskQueue    chan emailTask
}

type emailTask struct {
	to           string
	templateFile string
	data         EmailData
	subject      string
}

func NewEmailService() (*EmailService, error) {
	templatesDir := os.Getenv("TEMPLATES_DIR")
	if templatesDir == "" {
		return nil, fmt.Errorf("TEMPLATES_DIR is not set in environment variables")
	}
	from := os.Getenv("EMAIL_ADDRESS")
	if from == "" {
		return nil, fmt.Errorf("EMAIL_ADDRESS is not set in environment variables")
	}
	password := os.Getenv("EMAIL_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("EMAIL_PASSWORD is not set in environment variables")
	}

	s := &EmailService{
		from:         from,
		password:     password,
		templatesDir: templatesDir,
		smtpHost:     "smtp.gmail.com",
		smtpPort:     "587",
		taskQueue:    make(chan emailTask, 100),
	}
	go s.worker()
	return s, nil
}

func (s *EmailService) worker() {
	for task := range s.taskQueue {
		if err := s.sendTemplatedEmail(task.to, task.templateFile, task.data, task.subject); err != nil {
			log.Printf("Error sending email to %s: %v", task.to, err)
		}
	}
}

func (s *EmailService) QueueEmail(to string, data EmailData) {
	s.taskQueue <- emailTask{to, data.TemplateFileName(), data, data.Subject()}
}

func (s *EmailService) sendTemplatedEmail(to, templateFileName string, data EmailData, subject string) error {
	templatePath := filepath.Join(s.templatesDir, templateFileName)
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		body.String())

	auth := smtp.PlainAuth("", s.from, s.password, s.smtpHost)
	if err := smtp.SendMail(s.smtpHost+":"+s.smtpPort, auth, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
