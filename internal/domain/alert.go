package domain

// Alert - серверное сообщение безопасности, привязанное к зоне пляжа
type Alert struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	BeachID int    `json:"beachId"`
	ZoneID  *int   `json:"zoneId,omitempty"`
}

// Kind возвращает нормализованный тип алерта
func (a *Alert) Kind() ZoneKind {
	return MapAlertType(a.Type)
}

// MatchesZone сообщает, относится ли алерт к зоне: должны совпасть id зоны
// и нормализованный тип (оба через общие мапперы)
func (a *Alert) MatchesZone(z *Zone) bool {
	if a.ZoneID == nil || *a.ZoneID != z.ID {
		return false
	}
	return a.Kind() == z.Kind
}
