package models

// VoiceSettings параметры синтеза речи: множители высоты и скорости и тег голоса.
type VoiceSettings struct {
	Pitch float64 `json:"pitch"`
	Speed float64 `json:"speed"`
	Voice string  `json:"voice"`
}

// DefaultVoiceSettings используются, когда пользователь не менял голос.
var DefaultVoiceSettings = VoiceSettings{
	Pitch: 1,
	Speed: 1,
	Voice: "female-1",
}

// VoiceKind различает варианты Voice.
type VoiceKind int

const (
	// VoiceDefault голос по умолчанию.
	VoiceDefault VoiceKind = iota
	// VoiceCustom голос, настроенный пользователем.
	VoiceCustom
)

// Voice либо голос по умолчанию, либо пользовательские настройки.
// Нулевое значение соответствует голосу по умолчанию.
type Voice struct {
	kind     VoiceKind
	settings VoiceSettings
}

// DefaultVoice возвращает голос по умолчанию.
func DefaultVoice() Voice {
	return Voice{kind: VoiceDefault}
}

// CustomVoice возвращает голос с пользовательскими настройками.
func CustomVoice(settings VoiceSettings) Voice {
	return Voice{kind: VoiceCustom, settings: settings}
}

// IsCustom сообщает, заданы ли пользовательские настройки.
func (v Voice) IsCustom() bool {
	return v.kind == VoiceCustom
}

// Settings возвращает действующие настройки голоса.
func (v Voice) Settings() VoiceSettings {
	if v.kind == VoiceCustom {
		return v.settings
	}
	return DefaultVoiceSettings
}
