package dto

import (
	"time"

	"github.com/beach-safety-agent/internal/domain"
)

// StatusResponse - состояние агента для companion-интерфейса
type StatusResponse struct {
	DeviceID    string                   `json:"device_id"`
	Tracker     string                   `json:"tracker"`
	Provider    string                   `json:"provider"`
	CurrentZone *domain.ResolutionResult `json:"current_zone,omitempty"`
	LastReading *domain.Reading          `json:"last_reading,omitempty"`
	Transitions []domain.Transition      `json:"transitions,omitempty"`
	StartedAt   time.Time                `json:"started_at"`
}
