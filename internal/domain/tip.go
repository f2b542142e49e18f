package domain

// Tip - совет дня от бэкенда
type Tip struct {
	ID       int    `json:"id"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Date     string `json:"date,omitempty"`
}

// FallbackTip возвращает запасной совет, когда бэкенд недоступен
func FallbackTip(language string) *Tip {
	return &Tip{
		Language: language,
		Title:    "Stay safe",
		Message:  "Swim only in supervised bathing zones and follow the flag signals.",
	}
}
