package render

import (
	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/portfolio"
)

// Page is everything a renderer needs for the single-page site: the contact
// form declaration and the prepared portfolio content.
type Page struct {
	Form    model.FormModel `json:"form"`
	Content portfolio.View  `json:"content"`
}
