package domain

// Settings - персистентные настройки пользователя. Мутируются только через
// Merge с частичным патчем; Version растёт на каждом изменении.
type Settings struct {
	Notifications  bool `json:"notifications"`
	LocationAlerts bool `json:"locationAlerts"`
	Sounds         bool `json:"sounds"`
	Vibrations     bool `json:"vibrations"`
	DailyTips      bool `json:"dailyTips"`
	Version        int  `json:"version"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Notifications:  true,
		LocationAlerts: true,
		Sounds:         true,
		Vibrations:     true,
		DailyTips:      false,
		Version:        1,
	}
}

// SettingsPatch - частичное обновление настроек; nil-поле означает
// "не менять"
type SettingsPatch struct {
	Notifications  *bool `json:"notifications,omitempty"`
	LocationAlerts *bool `json:"locationAlerts,omitempty"`
	Sounds         *bool `json:"sounds,omitempty"`
	Vibrations     *bool `json:"vibrations,omitempty"`
	DailyTips      *bool `json:"dailyTips,omitempty"`
}

// Empty сообщает, что патч ничего не меняет
func (p SettingsPatch) Empty() bool {
	return p.Notifications == nil && p.LocationAlerts == nil &&
		p.Sounds == nil && p.Vibrations == nil && p.DailyTips == nil
}

// Merge применяет патч и возвращает новую версию настроек
func (s Settings) Merge(p SettingsPatch) Settings {
	merged := s
	if p.Notifications != nil {
		merged.Notifications = *p.Notifications
	}
	if p.LocationAlerts != nil {
		merged.LocationAlerts = *p.LocationAlerts
	}
	if p.Sounds != nil {
		merged.Sounds = *p.Sounds
	}
	if p.Vibrations != nil {
		merged.Vibrations = *p.Vibrations
	}
	if p.DailyTips != nil {
		merged.DailyTips = *p.DailyTips
	}
	merged.Version = s.Version + 1
	return merged
}
