package domain

import "time"

// AssistLog registra un intercambio pregunta/respuesta con el asistente.
type AssistLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
