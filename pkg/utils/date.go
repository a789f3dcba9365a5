package utils

import "time"

// ParseDate interpreta uma data no formato YYYY-MM-DD.
// Retorna nil quando a string está vazia.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
