package domain

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/beach-safety-agent/internal/pkg/geo"
)

// ZoneKind - нормализованная классификация безопасности зоны.
// Unknown зарезервирован для состояния "ни одна зона не совпала";
// мапперы типов его никогда не возвращают.
type ZoneKind string

const (
	ZoneSafe    ZoneKind = "safe"
	ZoneSport   ZoneKind = "sport"
	ZoneDanger  ZoneKind = "danger"
	ZoneUnknown ZoneKind = "unknown"
)

// Severity задаёт приоритет при пересечении зон: danger > sport > safe
func (k ZoneKind) Severity() int {
	switch k {
	case ZoneDanger:
		return 3
	case ZoneSport:
		return 2
	case ZoneSafe:
		return 1
	default:
		return 0
	}
}

// MapZoneType нормализует тип зоны бэкенда. Неизвестные значения
// консервативно считаются опасными.
func MapZoneType(raw string) ZoneKind {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BATHING":
		return ZoneSafe
	case "SPORTS":
		return ZoneSport
	default:
		return ZoneDanger
	}
}

// MapAlertType нормализует тип алерта бэкенда. Сопоставление алерта с зоной
// работает только через MapAlertType/MapZoneType, оба тотальны.
func MapAlertType(raw string) ZoneKind {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BATHING":
		return ZoneSafe
	case "SPORTS":
		return ZoneSport
	case "DANGER":
		return ZoneDanger
	default:
		return ZoneDanger
	}
}

// Zone - полигональная подобласть пляжа с классификацией безопасности.
// Неизменяема в течение сессии после загрузки.
type Zone struct {
	ID      int         `json:"id"`
	Type    string      `json:"type"`
	Kind    ZoneKind    `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Polygon []geo.Point `json:"coordinates"`
}

// zoneDTO - формат зоны в ответе бэкенда; coordinates приходит либо
// GeoJSON-строкой, либо структурированным массивом точек
type zoneDTO struct {
	ID          int             `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (z *Zone) UnmarshalJSON(data []byte) error {
	var dto zoneDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	z.ID = dto.ID
	z.Type = dto.Type
	z.Name = dto.Name
	z.Kind = MapZoneType(dto.Type)
	// битый или вырожденный полигон даёт пустое кольцо: зона не участвует
	// в сопоставлении, но загрузка пляжа не срывается
	z.Polygon = geo.ParsePolygon(dto.Coordinates)

	return nil
}

// Matchable сообщает, участвует ли зона в проверке принадлежности точки
func (z *Zone) Matchable() bool {
	return len(z.Polygon) >= 3
}

// Contains проверяет, лежит ли координата внутри зоны
func (z *Zone) Contains(c Coordinate) bool {
	if !z.Matchable() {
		return false
	}
	return geo.PointInPolygon(c.Point(), z.Polygon)
}

// Beach - именованная территория с упорядоченным набором зон
type Beach struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Zones []Zone `json:"zones"`
}
