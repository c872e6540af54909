package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/campusbites/campusbites-api/internal/mailer"
	"github.com/campusbites/campusbites-api/internal/payment"
)

var ReceiptTemplate string // Set from main via embed

// ReceiptMailer renders the HTML receipt and delivers it by email after
// a successful checkout.
type ReceiptMailer struct {
	mailer *mailer.Mailer
}

func NewReceiptMailer(m *mailer.Mailer) *ReceiptMailer {
	return &ReceiptMailer{mailer: m}
}

func (s *ReceiptMailer) RenderHTML(r payment.Receipt) (string, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	}

	tmpl, err := template.New("receipt").Funcs(funcMap).Parse(ReceiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *ReceiptMailer) SendReceipt(to string, r payment.Receipt) error {
	body, err := s.RenderHTML(r)
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	subject := fmt.Sprintf("Your CampusBites receipt %s", r.ReceiptID)
	return s.mailer.Send(to, subject, body)
}
