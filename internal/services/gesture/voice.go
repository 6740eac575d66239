package gesture

import (
	"strings"
	"unicode"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

const (
	genderFemale = "female"
	genderMale   = "male"
)

// Utterance текст и параметры его озвучивания.
type Utterance struct {
	Text  string
	Pitch float64
	Rate  float64
	// Voice имя установленного голоса; пустая строка означает голос по умолчанию.
	Voice string
}

// Gender грубо определяет пол голоса по тегу: "female-1" -> female, иначе male.
func Gender(tag string) string {
	if strings.HasPrefix(strings.ToLower(tag), genderFemale) {
		return genderFemale
	}
	return genderMale
}

// SelectVoice возвращает первый установленный голос, в имени которого есть
// слово нужного пола. "Female" не считается совпадением для male.
func SelectVoice(installed []string, gender string) (string, bool) {
	for _, name := range installed {
		words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, w := range words {
			if w == gender {
				return name, true
			}
		}
	}
	return "", false
}

// NewUtterance собирает параметры озвучивания из настроек голоса пользователя.
func NewUtterance(text string, voice models.Voice, installed []string) Utterance {
	settings := voice.Settings()
	u := Utterance{
		Text:  text,
		Pitch: settings.Pitch,
		Rate:  settings.Speed,
	}
	if name, ok := SelectVoice(installed, Gender(settings.Voice)); ok {
		u.Voice = name
	}
	return u
}
