// Package alert notifies the assigned expert when a patient's assessed risk
// reaches an elevated level. Alerts are best-effort: a send failure is logged
// and never blocks or fails the analysis that triggered it.
package alert

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"mindline/internal/config"
	"mindline/internal/db"
	"mindline/internal/models"
)

// Service sends expert alert emails over SMTP.
type Service struct {
	cfg     *config.Config
	db      *db.DB
	enabled bool
}

// NewService creates a new alert service.
func NewService(cfg *config.Config, database *db.DB) *Service {
	s := &Service{
		cfg:     cfg,
		db:      database,
		enabled: cfg.IsEmailEnabled(),
	}

	if s.enabled {
		log.Printf("Expert alerts enabled (SMTP: %s:%d)", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		log.Println("Expert alerts disabled (SMTP not configured)")
	}

	return s
}

// IsEnabled returns true if alerting is configured.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// NotifyElevatedRisk emails the expert assigned to patient when an assessment
// lands at an elevated level. No-op for lower levels, unassigned patients, or
// when SMTP is not configured.
func (s *Service) NotifyElevatedRisk(ctx context.Context, patient *models.Patient, assessment *models.RiskAssessment) error {
	if !s.enabled || !assessment.Level.IsElevated() {
		return nil
	}
	if patient.ExpertID == nil {
		return nil
	}

	expert, err := s.db.GetExpert(ctx, *patient.ExpertID)
	if err != nil {
		return fmt.Errorf("failed to resolve expert for alert: %w", err)
	}

	subject := fmt.Sprintf("[Mindline] Riesgo %s detectado: %s", strings.ToUpper(assessment.Level.String()), patient.Name)
	body := s.buildBody(patient, assessment)

	return s.send([]string{expert.Email}, subject, body)
}

func (s *Service) buildBody(patient *models.Patient, a *models.RiskAssessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Paciente: %s\r\n", patient.Name)
	fmt.Fprintf(&b, "Nivel de riesgo: %s (puntaje %d/100)\r\n", a.Level.String(), a.Score)
	fmt.Fprintf(&b, "Evaluado: %s\r\n\r\n", a.CreatedAt.Format("2006-01-02 15:04 MST"))

	if a.Indicators.Crisis() {
		b.WriteString("ATENCIÓN: se detectaron señales de crisis (ideación suicida o autolesión).\r\n\r\n")
	}
	if a.Summary != "" {
		fmt.Fprintf(&b, "%s\r\n\r\n", a.Summary)
	}
	if a.Appointment.Recommended {
		if a.Appointment.Urgent {
			b.WriteString("Se recomendó una cita URGENTE al paciente.\r\n")
		} else {
			b.WriteString("Se recomendó una cita al paciente.\r\n")
		}
	}

	fmt.Fprintf(&b, "\r\nPlataforma de citas: %s\r\n", s.cfg.AppointmentURL)

	return b.String()
}

// send delivers one plain-text email.
func (s *Service) send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	from := s.cfg.SMTPFrom
	if s.cfg.SMTPFromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, s.cfg.SMTPFrom, to, []byte(msg.String()))
}
