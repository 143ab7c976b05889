package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var youtubeURLPattern = regexp.MustCompile(`^https?://(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]{6,}`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// youtube_url accepts standard watch and short-link forms only.
	_ = v.RegisterValidation("youtube_url", func(fl validator.FieldLevel) bool {
		return youtubeURLPattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
