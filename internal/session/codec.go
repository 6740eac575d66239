package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

// ErrMalformed возвращается, когда сохранённая сессия не соответствует схеме.
var ErrMalformed = errors.New("malformed session")

// schemaJSON описывает формат слота authState. Поле версии отсутствует,
// фронтенд пишет сессию без него.
const schemaJSON = `{
  "type": "object",
  "properties": {
    "user": {
      "type": ["object", "null"],
      "required": ["id", "email", "isPremium"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "email": {"type": "string"},
        "isPremium": {"type": "boolean"},
        "premiumExpiry": {"type": "string", "format": "date-time"},
        "voiceSettings": {
          "type": "object",
          "required": ["pitch", "speed", "voice"],
          "properties": {
            "pitch": {"type": "number"},
            "speed": {"type": "number"},
            "voice": {"type": "string"}
          }
        }
      }
    },
    "isAuthenticated": {"type": "boolean"},
    "isLoading": {"type": "boolean"}
  }
}`

var sessionSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("session: invalid schema: %v", err))
	}
	return schema
}

// Encode сериализует сессию целиком.
func Encode(s models.Session) ([]byte, error) {
	const op = "session.Encode"
	s.IsAuthenticated = s.User != nil
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Decode проверяет данные по схеме и восстанавливает сессию, включая
// premiumExpiry из строки RFC 3339. При любой ошибке возвращается пустая
// сессия и ошибка, оборачивающая ErrMalformed.
//
// IsAuthenticated вычисляется заново, IsLoading всегда сбрасывается.
func Decode(data []byte) (models.Session, error) {
	const op = "session.Decode"

	result, err := sessionSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return models.EmptySession(), fmt.Errorf("%s: %w: %w", op, ErrMalformed, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return models.EmptySession(), fmt.Errorf("%s: %w: %s", op, ErrMalformed, strings.Join(msgs, "; "))
	}

	var wire models.Session
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.EmptySession(), fmt.Errorf("%s: %w: %w", op, ErrMalformed, err)
	}
	return models.NewSession(wire.User), nil
}
