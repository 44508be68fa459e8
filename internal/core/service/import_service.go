package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

var importValidator = validator.New()

type faqImportFile struct {
	FAQs []domain.FAQInput `yaml:"faqs" validate:"required,min=1,dive"`
}

// ParseFAQImport reads a YAML bulk import document of the form
//
//	faqs:
//	  - category_id: 3
//	    translations:
//	      - {language: en, question: "...", answer: "..."}
//
// Unknown fields are rejected and every entry is validated before any is sent.
func ParseFAQImport(r io.Reader) ([]domain.FAQInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f faqImportFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("import: empty document")
		}
		return nil, fmt.Errorf("import: decode: %w", err)
	}
	if err := importValidator.Struct(f); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return f.FAQs, nil
}
