package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// SessionManager is the session state the console drives.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
	Logout(ctx context.Context)
	Current() domain.Session
	ExpiresAt() time.Time
}

// LocaleManager is the translation state the console drives.
type LocaleManager interface {
	SetLocale(ctx context.Context, code string) bool
	Current() domain.Locale
	Document() domain.Document
	Supported() []domain.Locale
	T(key string) string
	Labels(prefixes ...string) map[string]string
}

type SessionHandler struct {
	sessions SessionManager
	locales  LocaleManager
}

func NewSessionHandler(sessions SessionManager, locales LocaleManager) *SessionHandler {
	return &SessionHandler{sessions: sessions, locales: locales}
}

// Login signs the console in against the backend.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			metrics.SessionEventsTotal.WithLabelValues("login_failed").Inc()
		}
		return err
	}

	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, h.view())
}

// Register creates a backend account. The response tells the client which
// page to open next.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, err := h.sessions.Register(c.Request().Context(), domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRegistration) {
			metrics.SessionEventsTotal.WithLabelValues("register_failed").Inc()
		}
		return err
	}

	metrics.SessionEventsTotal.WithLabelValues("register").Inc()
	resp := registerResponse{User: sess.User, Authenticated: sess.Token != "", Next: "/login"}
	if resp.Authenticated {
		resp.Next = "/dashboard"
	}
	return c.JSON(http.StatusCreated, resp)
}

// Logout discards the session. It always succeeds.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, h.view())
}

// Show returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Show(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

// SetLanguage switches the display language. Only exact supported codes are
// accepted.
//
// @Summary      Switch language
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      languageRequest  true  "Locale code"
// @Success      200   {object}  languageResponse
// @Failure      422   {object}  map[string]string
// @Router       /session/language [put]
func (h *SessionHandler) SetLanguage(c echo.Context) error {
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if !h.locales.SetLocale(c.Request().Context(), req.Locale) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unsupported locale")
	}
	metrics.LocaleSwitchesTotal.WithLabelValues(req.Locale).Inc()

	return c.JSON(http.StatusOK, languageResponse{
		Locale:   h.locales.Current(),
		Document: h.locales.Document(),
	})
}

func (h *SessionHandler) view() sessionResponse {
	sess := h.sessions.Current()
	resp := sessionResponse{
		Authenticated: sess.Authenticated(),
		User:          sess.User,
		Locale:        h.locales.Current().Code,
	}
	if exp := h.sessions.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	return resp
}
