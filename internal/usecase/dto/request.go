package dto

// ResolveRequest - запрос резолюции произвольной координаты через локальный API
type ResolveRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Mode      string  `json:"mode,omitempty" validate:"omitempty,oneof=local remote"`
}

// LanguageRequest - смена языка контента агента
type LanguageRequest struct {
	Language string `json:"language" validate:"required,min=2,max=8"`
}

// SettingsPatchRequest - частичное обновление настроек через локальный API
type SettingsPatchRequest struct {
	Notifications  *bool `json:"notifications,omitempty"`
	LocationAlerts *bool `json:"locationAlerts,omitempty"`
	Sounds         *bool `json:"sounds,omitempty"`
	Vibrations     *bool `json:"vibrations,omitempty"`
	DailyTips      *bool `json:"dailyTips,omitempty"`
}
