package models

// Finding - одна находка валидации: путь к полю, сообщение и секция формы
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Section string `json:"section"`
}

// ValidationResult - результат валидации: блокирующие ошибки и рекомендательные предупреждения
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}
