package risk

import (
	"mindline/internal/models"
)

// appointmentScoreThreshold is the minimum fused score that triggers a
// referral on its own.
const appointmentScoreThreshold = 40

// Referral message variants appended to the assistant's reply by the
// conversation handler. The scheduling link is the configured external
// platform.
const (
	urgentAppointmentMessage  = "\n\n---\n💙 **¿Necesitas más apoyo?**\nPuedes agendar una cita con psicólogos especializados\n[📅 Solicitar cita ahora]("
	routineAppointmentMessage = "\n\n---\n💙 **Seguimiento profesional**\nPara un apoyo más continuo\n[📅 Agendar cita]("
)

// DecideAppointment evaluates the referral policy for a turn: risk level in
// {alto, critico}, score at or above the threshold, or a crisis indicator.
// The crisis indicator is a hard override that bypasses score thresholds
// entirely; a crisis signal is never silently suppressed.
func DecideAppointment(level models.RiskLevel, score int, indicators models.IndicatorSet, appointmentURL string) models.Appointment {
	crisis := indicators.Crisis()

	if !crisis && level < models.RiskHigh && score < appointmentScoreThreshold {
		return models.Appointment{}
	}

	urgent := crisis || level >= models.RiskHigh
	msg := routineAppointmentMessage
	if urgent {
		msg = urgentAppointmentMessage
	}

	return models.Appointment{
		Recommended: true,
		Urgent:      urgent,
		Message:     msg + appointmentURL + ")",
	}
}
