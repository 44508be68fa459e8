package handler

import (
	"time"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password_strength"`
	Role     string `json:"role"     validate:"required,oneof=merchant customer"`
}

type languageRequest struct {
	Locale string `json:"locale" validate:"required"`
}

type faqListQuery struct {
	Search   string `query:"search"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Sort     string `query:"sort"`
}

type faqGetQuery struct {
	IncludeAllTranslations bool `query:"include_all_translations"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	Locale        string           `json:"locale"`
}

type registerResponse struct {
	User          *domain.Identity `json:"user"`
	Authenticated bool             `json:"authenticated"`
	// Next is the page the client should open: the dashboard when the
	// backend issued a credential, the login page otherwise.
	Next string `json:"next"`
}

type languageResponse struct {
	Locale   domain.Locale   `json:"locale"`
	Document domain.Document `json:"document"`
}

type navLink struct {
	Name  domain.RouteName `json:"name"`
	Path  string           `json:"path"`
	Label string           `json:"label"`
}

type pageView struct {
	Route     domain.RouteName  `json:"route"`
	Component string            `json:"component"`
	Path      string            `json:"path"`
	Params    map[string]string `json:"params,omitempty"`
	Document  domain.Document   `json:"document"`
	User      *domain.Identity  `json:"user"`
	Labels    map[string]string `json:"labels"`
	Nav       []navLink         `json:"nav"`
	Languages []domain.Locale   `json:"languages"`
}

type importResponse struct {
	Total   int                  `json:"total"`
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
	Results []queue.ImportResult `json:"results"`
}

type statusResponse struct {
	Status string `json:"status"`
}
