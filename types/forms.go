package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the client-held draft of a new listing. It has no identity
// until the server assigns one.
type Submission struct {
	Name            string      `json:"name" validate:"required"`
	Category        Category    `json:"category" validate:"required,category"`
	Description     string      `json:"description" validate:"required"`
	Price           float64     `json:"price" validate:"gte=0"`
	PriceType       PriceType   `json:"price_type" validate:"required,oneof=lifetime monthly free"`
	DemoURL         string      `json:"demo_url,omitempty" validate:"omitempty,http_url"`
	InstallType     InstallType `json:"install_type,omitempty" validate:"omitempty,oneof=api telegram zapier nocode custom"`
	AtlasCompatible bool        `json:"atlas_compatible"`
}

// Validate checks the draft before it is sent.
func (s Submission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// WaitlistGoal is one selectable goal on the waitlist form.
type WaitlistGoal struct {
	Value string
	Label string
	Icon  string
}

// WaitlistGoals are the goals offered on the waitlist form.
var WaitlistGoals = []WaitlistGoal{
	{Value: "fitness", Label: "Get fit & healthy", Icon: "💪"},
	{Value: "business", Label: "Grow my business", Icon: "🚀"},
	{Value: "content", Label: "Create content", Icon: "✍️"},
	{Value: "finance", Label: "Save money", Icon: "💰"},
	{Value: "leads", Label: "Generate leads", Icon: "🎯"},
	{Value: "learning", Label: "Learn faster", Icon: "🧠"},
	{Value: "building", Label: "Build products", Icon: "⚡"},
	{Value: "productivity", Label: "Stay organized", Icon: "📋"},
}

// WaitlistEntry is the body of POST /atlas/waitlist.
type WaitlistEntry struct {
	Email string   `json:"email" validate:"required,email"`
	Goals []string `json:"goals" validate:"dive,waitlist_goal"`
}

// Validate checks the entry before it is sent.
func (e WaitlistEntry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func validGoal(value string) bool {
	for _, g := range WaitlistGoals {
		if g.Value == value {
			return true
		}
	}
	return false
}

func categoryNames() string {
	names := make([]string, len(AllCategories))
	for i, c := range AllCategories {
		names[i] = string(c)
	}
	return strings.Join(names, " ")
}

func goalNames() string {
	names := make([]string, len(WaitlistGoals))
	for i, g := range WaitlistGoals {
		names[i] = g.Value
	}
	return strings.Join(names, " ")
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("waitlist_goal", func(fl validator.FieldLevel) bool {
		return validGoal(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "category":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, categoryNames()))
		case "waitlist_goal":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, goalNames()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "http_url":
			messages = append(messages, fmt.Sprintf("%s must be an http(s) URL", field))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, e.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
