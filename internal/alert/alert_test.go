package alert

import (
	"context"
	"strings"
	"testing"
	"time"

	"mindline/internal/config"
	"mindline/internal/models"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantEnabled bool
	}{
		{
			name: "enabled when SMTP configured",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
				SMTPFrom: "alerts@example.com",
			},
			wantEnabled: true,
		},
		{
			name: "disabled without host",
			cfg: &config.Config{
				SMTPFrom: "alerts@example.com",
			},
			wantEnabled: false,
		},
		{
			name: "disabled without from address",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
			},
			wantEnabled: false,
		},
		{
			name:        "disabled with empty config",
			cfg:         &config.Config{},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.cfg, nil)
			if s.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", s.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestNotifyElevatedRisk_NoOpCases(t *testing.T) {
	s := NewService(&config.Config{}, nil)
	patient := &models.Patient{Name: "Paciente"}

	// Disabled service
	if err := s.NotifyElevatedRisk(context.Background(), patient, &models.RiskAssessment{Level: models.RiskCritical}); err != nil {
		t.Errorf("disabled service should be a no-op, got %v", err)
	}

	// Enabled but level below threshold
	enabled := NewService(&config.Config{SMTPHost: "smtp.example.com", SMTPFrom: "a@example.com"}, nil)
	if err := enabled.NotifyElevatedRisk(context.Background(), patient, &models.RiskAssessment{Level: models.RiskModerate}); err != nil {
		t.Errorf("sub-threshold level should be a no-op, got %v", err)
	}

	// Elevated but unassigned patient
	if err := enabled.NotifyElevatedRisk(context.Background(), patient, &models.RiskAssessment{Level: models.RiskHigh}); err != nil {
		t.Errorf("unassigned patient should be a no-op, got %v", err)
	}
}

func TestBuildBody(t *testing.T) {
	s := NewService(&config.Config{AppointmentURL: "https://citas.example.com/"}, nil)

	patient := &models.Patient{Name: "Paciente Prueba"}
	assessment := &models.RiskAssessment{
		Level:       models.RiskCritical,
		Score:       92,
		Indicators:  models.IndicatorSet{SuicidalIdeation: true},
		Appointment: models.Appointment{Recommended: true, Urgent: true},
		Summary:     "Se detectaron 1 palabra(s) clave de riesgo. Nivel de riesgo: CRITICO.",
		CreatedAt:   time.Now().UTC(),
	}

	body := s.buildBody(patient, assessment)

	for _, want := range []string{
		"Paciente Prueba",
		"critico",
		"92/100",
		"señales de crisis",
		"cita URGENTE",
		"https://citas.example.com/",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("alert body missing %q\nbody:\n%s", want, body)
		}
	}
}
