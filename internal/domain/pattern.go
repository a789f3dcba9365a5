package domain

import "time"

// LearnedPattern é uma heurística aprendida por um agente, independente
// de qualquer campanha. O id e o created_at nunca mudam; confiança e
// tamanho da amostra podem ser revisados depois.
type LearnedPattern struct {
	PatternID       string    `json:"pattern_id"`
	AgentName       string    `json:"agent_name"`
	PatternType     string    `json:"pattern_type"`
	Rule            string    `json:"rule"`
	ConfidenceLevel float64   `json:"confidence_level"`
	SampleSize      int       `json:"sample_size"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
