// Package models содержит доменные модели демо-приложения: пользователя,
// сессию, тарифные планы и результаты распознавания жестов.
package models

import (
	"encoding/json"
	"time"
)

// User представляет учётную запись демо-пользователя.
type User struct {
	ID            string     // Непрозрачный идентификатор пользователя
	Email         string     // Электронная почта
	IsPremium     bool       // Признак премиум-доступа
	PremiumExpiry *time.Time // Дата окончания премиум-доступа
	Voice         Voice      // Настройки голоса для синтеза речи
}

// userJSON повторяет формат, в котором фронтенд хранит пользователя.
type userJSON struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	IsPremium     bool           `json:"isPremium"`
	PremiumExpiry *time.Time     `json:"premiumExpiry,omitempty"`
	VoiceSettings *VoiceSettings `json:"voiceSettings,omitempty"`
}

// MarshalJSON сериализует пользователя; голос по умолчанию не записывается.
func (u User) MarshalJSON() ([]byte, error) {
	wire := userJSON{
		ID:            u.ID,
		Email:         u.Email,
		IsPremium:     u.IsPremium,
		PremiumExpiry: u.PremiumExpiry,
	}
	if u.Voice.IsCustom() {
		settings := u.Voice.Settings()
		wire.VoiceSettings = &settings
	}
	return json.Marshal(wire)
}

// UnmarshalJSON восстанавливает пользователя, включая дату окончания премиума
// из строки RFC 3339.
func (u *User) UnmarshalJSON(data []byte) error {
	var wire userJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*u = User{
		ID:            wire.ID,
		Email:         wire.Email,
		IsPremium:     wire.IsPremium,
		PremiumExpiry: wire.PremiumExpiry,
		Voice:         DefaultVoice(),
	}
	if wire.VoiceSettings != nil {
		u.Voice = CustomVoice(*wire.VoiceSettings)
	}
	return nil
}

// Clone возвращает копию пользователя, не разделяющую указатели с оригиналом.
func (u User) Clone() User {
	if u.PremiumExpiry != nil {
		expiry := *u.PremiumExpiry
		u.PremiumExpiry = &expiry
	}
	return u
}
