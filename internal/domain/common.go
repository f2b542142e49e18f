package domain

import (
	"time"

	"github.com/beach-safety-agent/internal/pkg/geo"
)

// Coordinate - координаты пользователя в формате бэкенда
type Coordinate struct {
	Lat float64 `json:"latitude" validate:"latitude"`
	Lon float64 `json:"longitude" validate:"longitude"`
}

// Valid проверяет, что обе координаты конечны и в допустимых пределах
func (c Coordinate) Valid() bool {
	return geo.ValidateCoordinates(c.Lat, c.Lon)
}

// Point переводит координату в точку геометрического движка
func (c Coordinate) Point() geo.Point {
	return geo.Point{Lat: c.Lat, Lon: c.Lon}
}

// String форматирует координату для логов
func (c Coordinate) String() string {
	return geo.FormatCoordinate(c.Lat) + "," + geo.FormatCoordinate(c.Lon)
}

// Reading - одно показание источника позиции
type Reading struct {
	Coordinate Coordinate `json:"coordinate"`
	AccuracyM  float64    `json:"accuracy_m,omitempty"`
	At         time.Time  `json:"at"`
}

// Notification - payload уведомления для Notifier
type Notification struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Kind    ZoneKind `json:"kind"`
	Sound   bool     `json:"sound"`
	Vibrate bool     `json:"vibrate"`
}
