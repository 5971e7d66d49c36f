package editor

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/campusboard/calendar/internal/storage"
	"github.com/go-playground/validator/v10"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	notBlankTag = "notblank"
)

// Draft is the field set a calendar form submits. Date and time of day are
// entered separately and combined into timestamps by Normalize.
type Draft struct {
	Title       string `json:"title" validate:"notblank"`
	Date        string `json:"date" validate:"required"`
	StartClock  string `json:"startTime" validate:"required"`
	EndDate     string `json:"endDate"`
	EndClock    string `json:"endTime" validate:"required"`
	Category    string `json:"category"`
	Course      string `json:"course"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Editor normalizes drafts into canonical events. All events enter the
// store through here or through an explicit update, never by partial field
// mutation.
type Editor struct {
	validate        *validator.Validate
	defaultCategory storage.Category
	location        *time.Location
}

func New(defaultCategory storage.Category) *Editor {
	v := validator.New()

	// Report errors against JSON field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if str, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(str) != ""
		}
		return false
	})

	return &Editor{
		validate:        v,
		defaultCategory: defaultCategory,
		location:        time.Local,
	}
}

// Normalize validates a draft and produces an event ready for the store.
// A zero-duration event (end equal to start) is a valid reminder; only a
// strictly earlier end is rejected.
func (ed *Editor) Normalize(d Draft) (storage.Event, error) {
	if err := ed.validate.Struct(d); err != nil {
		return storage.Event{}, toValidationError(err)
	}

	var fields []storage.FieldError
	start, err := ed.combine(d.Date, d.StartClock)
	if err != nil {
		fields = append(fields, storage.FieldError{Field: "startTime", Message: err.Error()})
	}
	endDate := d.EndDate
	if endDate == "" {
		endDate = d.Date
	}
	end, err := ed.combine(endDate, d.EndClock)
	if err != nil {
		fields = append(fields, storage.FieldError{Field: "endTime", Message: err.Error()})
	}

	category := ed.defaultCategory
	if d.Category != "" {
		category = storage.Category(d.Category)
		if !category.Valid() {
			fields = append(fields, storage.FieldError{
				Field:   "category",
				Message: fmt.Sprintf("unknown category %q", d.Category),
			})
		}
	}
	if len(fields) > 0 {
		return storage.Event{}, storage.NewValidationError(fields...)
	}
	if end.Before(start) {
		return storage.Event{}, storage.NewValidationError(storage.FieldError{
			Field:   "endTime",
			Message: "must not be before startTime",
		})
	}

	return storage.Event{
		Title:       strings.TrimSpace(d.Title),
		StartTime:   start,
		EndTime:     end,
		Category:    category,
		Course:      strings.TrimSpace(d.Course),
		Location:    strings.TrimSpace(d.Location),
		Description: strings.TrimSpace(d.Description),
		SharedWith:  []storage.Share{},
	}, nil
}

func (ed *Editor) combine(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), ed.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", date, dateLayout)
	}
	c, err := time.Parse(clockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected %s", clock, clockLayout)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, ed.location), nil
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return storage.NewValidationError(storage.FieldError{Field: "draft", Message: err.Error()})
	}
	fields := make([]storage.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case notBlankTag:
			msg = "must not be blank"
		}
		fields = append(fields, storage.FieldError{Field: fe.Field(), Message: msg})
	}
	return storage.NewValidationError(fields...)
}
