package models

// Session описывает, какой пользователь сейчас вошёл в систему.
type Session struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	IsLoading       bool  `json:"isLoading"`
}

// EmptySession возвращает сессию без пользователя.
func EmptySession() Session {
	return Session{}
}

// NewSession возвращает сессию для пользователя, сохраняя инвариант
// IsAuthenticated == (User != nil).
func NewSession(user *User) Session {
	return Session{
		User:            user,
		IsAuthenticated: user != nil,
	}
}

// Clone возвращает глубокую копию сессии.
func (s Session) Clone() Session {
	if s.User != nil {
		u := s.User.Clone()
		s.User = &u
	}
	return s
}
