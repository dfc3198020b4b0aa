package server

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GenerateParams is accepted as a form, JSON body or query string.
type GenerateParams struct {
	TextRef string `form:"text_ref" json:"text_ref" query:"text_ref" validate:"required,max=200"`
}

func (p *GenerateParams) Normalize() {
	p.TextRef = strings.TrimSpace(p.TextRef)
}

func (p *GenerateParams) Validate() map[string]string {
	if err := validate.Struct(p); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return map[string]string{"text_ref": err.Error()}
		}
		errors := make(map[string]string)
		for _, e := range errs {
			errors["text_ref"] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
