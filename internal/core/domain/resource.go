package domain

// CategoryInput is the body sent when creating or renaming an FAQ category.
type CategoryInput struct {
	Name string `json:"name" yaml:"name" validate:"required"`
}

// TranslationInput is one language variant of an FAQ.
type TranslationInput struct {
	Language string `json:"language" yaml:"language" validate:"required"`
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer"   yaml:"answer"   validate:"required"`
}

// FAQInput is the body sent when creating or updating an FAQ.
type FAQInput struct {
	CategoryID   uint64             `json:"category_id"  yaml:"category_id"  validate:"required,gt=0"`
	Translations []TranslationInput `json:"translations" yaml:"translations" validate:"required,min=1,dive"`
}
