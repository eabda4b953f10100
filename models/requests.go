package models

import (
	"github.com/gottatrackem/backend/apperrors"
)

// AddUserCardRequest is the POST /users/:userId/collection body. Finish,
// language, condition and quantity default the way the catalog treats a
// plain English non-foil near-mint single.
type AddUserCardRequest struct {
	CardID    string `json:"cardId"`
	Finish    string `json:"finish"`
	Language  string `json:"language"`
	Condition string `json:"condition"`
	Quantity  *int64 `json:"quantity"`
}

const (
	DefaultFinish    = "normal"
	DefaultLanguage  = "en"
	DefaultCondition = "NM"
)

// Validate applies defaults and rejects invalid input. Negative quantity
// never reaches the store.
func (r *AddUserCardRequest) Validate() error {
	if r.CardID == "" {
		return apperrors.NewValidation("cardId", "cardId is required")
	}
	if r.Finish == "" {
		r.Finish = DefaultFinish
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Condition == "" {
		r.Condition = DefaultCondition
	}
	if r.Quantity == nil {
		one := int64(1)
		r.Quantity = &one
	}
	if *r.Quantity < 0 {
		return apperrors.NewValidation("quantity", "quantity must not be negative")
	}
	return nil
}

// ShareCreateRequest is the POST /share/create body.
type ShareCreateRequest struct {
	UserID    string         `json:"userId"`
	Scope     map[string]any `json:"scope"`
	ExpiresAt string         `json:"expiresAt"`
}

func (r *ShareCreateRequest) Validate() error {
	if r.UserID == "" {
		return apperrors.NewValidation("userId", "userId is required")
	}
	return nil
}

// CatalogQuery carries the pagination parameters forwarded verbatim to
// the catalog provider.
type CatalogQuery struct {
	Query    string
	Page     int
	PageSize int
}

func (q *CatalogQuery) ApplyDefaults(defaultPageSize int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
}
