package handle

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"kids-lecture/api/internal/lecture"
)

const (
	msgRequired     = "Topic and grade are required"
	msgGradeRange   = "Grade must be between 1 and 5"
	msgInvalidBody  = "Invalid request body"
	msgGenerateFail = "Failed to generate lecture. Please try again."
)

// gradeValue accepts either a JSON string or a JSON number.
type gradeValue string

func (g *gradeValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*g = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*g = gradeValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("grade must be a string or a number")
	}
	*g = gradeValue(n.String())
	return nil
}

type GenerateRequest struct {
	Topic string     `json:"topic" validate:"required"`
	Grade gradeValue `json:"grade" validate:"required,grade"`
}

type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		_, ok := lecture.ParseGrade(fl.Field().String())
		return ok
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

// check returns the client-facing message for the first rule req breaks, or "".
// Missing fields are reported before a bad grade.
func (rv *requestValidator) check(req GenerateRequest) string {
	err := rv.v.Struct(req)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidBody
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return msgRequired
		}
	}
	return msgGradeRange
}
