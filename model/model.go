package model

// Field types supported by the form editor and renderer.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldNumber   = "number"
	FieldTextarea = "textarea"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldRadio    = "radio"
)

type FormField struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// HasOptions reports whether the field type renders a list of choices.
func (f FormField) HasOptions() bool {
	return f.Type == FieldSelect || f.Type == FieldRadio
}

type FormConfig struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
	IsPrimary   bool        `json:"isPrimary"`
	IsArchived  bool        `json:"isArchived"`
	CreatedAt   int64       `json:"createdAt"`
	UpdatedAt   int64       `json:"updatedAt"`
}

// FormUpdate is a partial form document as sent by the admin editor.
// Title and Fields are always required by the API; the pointers
// distinguish an absent flag from an explicit false.
type FormUpdate struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Fields      []FormField `json:"fields"`
	IsPrimary   *bool       `json:"isPrimary"`
	IsArchived  *bool       `json:"isArchived"`
}

type FormResponse struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	Data        map[string]any `json:"data"`
	Email       *string        `json:"email"`
	SubmittedAt int64          `json:"submittedAt"`
}
