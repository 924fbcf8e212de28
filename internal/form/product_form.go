// Package form decodes and validates the single product form that serves
// both "Add Product" and "Edit Product".
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/crud-admin/internal/models"
	"github.com/Lixing-Zhang/crud-admin/internal/price"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("invalid product form")

// Mode tells create and edit apart
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ProductForm holds the raw form values. Price is kept as typed
// (formatted); Rating is JSON text.
type ProductForm struct {
	ID          string `form:"id" validate:"omitempty,number"`
	Title       string `form:"title" validate:"required,max=200"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Image       string `form:"image" validate:"omitempty,url"`
	Category    string `form:"category" validate:"max=100"`
	Rating      string `form:"rating"`

	// Errors maps form field names to messages after a failed Validate
	Errors map[string]string `form:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Blank returns an empty form in create mode
func Blank() *ProductForm {
	return &ProductForm{}
}

// FromProduct pre-fills the form for editing p
func FromProduct(p models.Product, f *price.Formatter) *ProductForm {
	return &ProductForm{
		ID:          strconv.FormatInt(p.ID, 10),
		Title:       p.Title,
		Price:       f.FormatAmount(p.Price),
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Rating:      p.Rating.String(),
	}
}

// Decode reads the product form from a POST body
func Decode(r *http.Request) (*ProductForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	return &ProductForm{
		ID:          strings.TrimSpace(r.PostFormValue("id")),
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Description: r.PostFormValue("description"),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Rating:      strings.TrimSpace(r.PostFormValue("rating")),
	}, nil
}

// Mode is ModeEdit when the hidden id field is populated
func (f *ProductForm) Mode() Mode {
	if f.ID != "" {
		return ModeEdit
	}
	return ModeCreate
}

func (f *ProductForm) IsEdit() bool {
	return f.Mode() == ModeEdit
}

// Title of the dialog for the current mode
func (f *ProductForm) Heading() string {
	if f.IsEdit() {
		return "Edit Product"
	}
	return "Add Product"
}

// ProductID returns the hidden id, zero in create mode
func (f *ProductForm) ProductID() int64 {
	id, err := strconv.ParseInt(f.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Validate checks the basic field rules and fills Errors.
// It returns ErrInvalidForm when any rule fails.
func (f *ProductForm) Validate() error {
	f.Errors = map[string]string{}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate form: %w", err)
		}
		for _, fe := range verrs {
			f.Errors[fe.Field()] = message(fe)
		}
	}

	if f.ID != "" && f.Errors["id"] == "" && f.ProductID() <= 0 {
		f.Errors["id"] = "must be a positive number"
	}

	if f.Rating != "" && !json.Valid([]byte(f.Rating)) {
		f.Errors["rating"] = "must be valid JSON"
	}

	if len(f.Errors) > 0 {
		return ErrInvalidForm
	}
	return nil
}

// Input converts a validated form into the API request body.
// The formatted price is unmasked; a blank rating becomes {}.
func (f *ProductForm) Input() (models.ProductInput, error) {
	amount, err := price.Parse(f.Price)
	if err != nil {
		return models.ProductInput{}, err
	}

	rating := models.EmptyRating
	if f.Rating != "" {
		rating = models.Rating(f.Rating)
	}

	return models.ProductInput{
		Title:       f.Title,
		Price:       amount,
		Description: f.Description,
		Image:       f.Image,
		Category:    f.Category,
		Rating:      rating,
	}, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "number":
		return "must be a number"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
