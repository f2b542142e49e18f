package domain

import "time"

// Режимы резолюции зоны
const (
	ResolutionModeLocal  = "local"
	ResolutionModeRemote = "remote"
)

// ResolutionResult - результат резолюции зоны для одной координаты.
// Создаётся заново на каждое показание, не персистится.
type ResolutionResult struct {
	Inside     bool       `json:"inside"`
	Kind       ZoneKind   `json:"kind"`
	ZoneID     *int       `json:"zone_id,omitempty"`
	BeachID    *int       `json:"beach_id,omitempty"`
	BeachName  string     `json:"beach_name,omitempty"`
	Message    string     `json:"message"`
	Mode       string     `json:"mode"`
	Coordinate Coordinate `json:"coordinate"`
	ResolvedAt time.Time  `json:"resolved_at"`
}

// NoZoneResult - результат "рядом нет зоны": безопасный дефолт для пустого
// набора зон, промаха по всем полигонам и любых сетевых ошибок
func NoZoneResult(c Coordinate, mode string) ResolutionResult {
	return ResolutionResult{
		Inside:     false,
		Kind:       ZoneUnknown,
		Message:    DefaultMessage(ZoneUnknown),
		Mode:       mode,
		Coordinate: c,
		ResolvedAt: time.Now(),
	}
}

// Дефолтные сообщения по видам зон; используются, когда для зоны нет
// подходящего алерта бэкенда
const (
	messageSafe   = "You are in a bathing zone. Swimming is safe, stay within the marked area."
	messageSport  = "You are in a water sports zone. Caution: watercraft traffic, swimming not advised."
	messageDanger = "You are in a danger zone. Do not swim here."
	messageNoZone = "No supervised beach zone nearby."
)

// DefaultMessage возвращает запасное сообщение для вида зоны
func DefaultMessage(kind ZoneKind) string {
	switch kind {
	case ZoneSafe:
		return messageSafe
	case ZoneSport:
		return messageSport
	case ZoneDanger:
		return messageDanger
	default:
		return messageNoZone
	}
}

// CheckLocationResult - ответ бэкенда на check-location (удалённый режим)
type CheckLocationResult struct {
	Inside    bool   `json:"inside"`
	ZoneID    *int   `json:"zoneId,omitempty"`
	ZoneType  string `json:"zoneType,omitempty"`
	BeachID   *int   `json:"beachId,omitempty"`
	BeachName string `json:"beachName,omitempty"`
}

// Transition - зафиксированная смена вида зоны, журналируется в историю
type Transition struct {
	ID         int64     `json:"id" db:"id"`
	FromKind   string    `json:"from_kind" db:"from_kind"`
	ToKind     string    `json:"to_kind" db:"to_kind"`
	Message    string    `json:"message" db:"message"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Dispatched bool      `json:"dispatched" db:"dispatched"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}
