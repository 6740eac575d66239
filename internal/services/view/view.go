// Package view хранит флаги навигации одного клиента и выводит из них
// состав экрана.
package view

import (
	"errors"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

// ErrUnknownPanel неизвестное имя панели.
var ErrUnknownPanel = errors.New("unknown panel")

// Panel переключаемая панель.
type Panel string

const (
	PanelLogin  Panel = "login"
	PanelCamera Panel = "camera"
	PanelPlans  Panel = "plans"
)

// Flags состояние навигации.
type Flags struct {
	LoginOpen   bool `json:"login_open"`
	CameraShown bool `json:"camera_shown"`
	PlansShown  bool `json:"plans_shown"`
}

// Navbar содержимое панели навигации.
type Navbar struct {
	ShowLogin  bool   `json:"show_login"`
	Email      string `json:"email,omitempty"`
	Premium    bool   `json:"premium"`
	ShowLogout bool   `json:"show_logout"`
}

// Screen видимые секции экрана.
type Screen struct {
	Flags
	Hero               bool   `json:"hero"`
	Dashboard          bool   `json:"dashboard"`
	CapturePanel       bool   `json:"capture_panel"`
	Plans              bool   `json:"plans"`
	PrivacyPlaceholder bool   `json:"privacy_placeholder"`
	BackButton         bool   `json:"back_button"`
	Navbar             Navbar `json:"navbar"`
}

// Derive вычисляет экран по флагам и сессии.
func Derive(f Flags, s models.Session) Screen {
	capture := f.CameraShown && s.IsAuthenticated
	screen := Screen{
		Flags:              f,
		Hero:               !f.CameraShown,
		Dashboard:          !capture,
		CapturePanel:       capture,
		Plans:              f.PlansShown || !s.IsAuthenticated,
		PrivacyPlaceholder: !f.CameraShown,
		BackButton:         f.CameraShown,
	}
	if s.User == nil {
		screen.Navbar.ShowLogin = true
	} else {
		screen.Navbar = Navbar{
			Email:      s.User.Email,
			Premium:    s.User.IsPremium,
			ShowLogout: true,
		}
	}
	return screen
}

// Router потокобезопасный владелец флагов навигации.
type Router struct {
	mu    sync.Mutex
	flags Flags
}

// New создает Router с закрытыми панелями.
func New() *Router {
	return &Router{}
}

// Flags возвращает копию флагов.
func (r *Router) Flags() Flags {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags
}

// Screen выводит экран для текущих флагов.
func (r *Router) Screen(s models.Session) Screen {
	return Derive(r.Flags(), s)
}

func (r *Router) update(fn func(f *Flags)) Flags {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.flags)
	return r.flags
}

func (r *Router) OpenLogin() Flags  { return r.update(func(f *Flags) { f.LoginOpen = true }) }
func (r *Router) CloseLogin() Flags { return r.update(func(f *Flags) { f.LoginOpen = false }) }

// LoggedIn закрывает окно входа.
func (r *Router) LoggedIn() Flags { return r.CloseLogin() }

// LoggedOut скрывает камеру и тарифы.
func (r *Router) LoggedOut() Flags {
	return r.update(func(f *Flags) {
		f.CameraShown = false
		f.PlansShown = false
	})
}

func (r *Router) OpenCamera() Flags  { return r.update(func(f *Flags) { f.CameraShown = true }) }
func (r *Router) CloseCamera() Flags { return r.update(func(f *Flags) { f.CameraShown = false }) }
func (r *Router) OpenPlans() Flags   { return r.update(func(f *Flags) { f.PlansShown = true }) }
func (r *Router) ClosePlans() Flags  { return r.update(func(f *Flags) { f.PlansShown = false }) }

// Upgraded скрывает тарифы после оплаты.
func (r *Router) Upgraded() Flags { return r.ClosePlans() }

// Open открывает панель по имени.
func (r *Router) Open(p Panel) (Flags, error) {
	switch p {
	case PanelLogin:
		return r.OpenLogin(), nil
	case PanelCamera:
		return r.OpenCamera(), nil
	case PanelPlans:
		return r.OpenPlans(), nil
	}
	return r.Flags(), fmt.Errorf("view.Open: %w: %q", ErrUnknownPanel, p)
}

// Close закрывает панель по имени.
func (r *Router) Close(p Panel) (Flags, error) {
	switch p {
	case PanelLogin:
		return r.CloseLogin(), nil
	case PanelCamera:
		return r.CloseCamera(), nil
	case PanelPlans:
		return r.ClosePlans(), nil
	}
	return r.Flags(), fmt.Errorf("view.Close: %w: %q", ErrUnknownPanel, p)
}
