package models

import "time"

// GestureResult распознанная (смоделированная) фраза.
type GestureResult struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// PremiumEvent публикуется после успешного перехода на премиум.
type PremiumEvent struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	PlanID string    `json:"plan_id"`
	Expiry time.Time `json:"expiry"`
}
