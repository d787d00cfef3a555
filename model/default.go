package model

// DefaultFormID is the well-known id of the fallback feedback form.
const DefaultFormID = "default-form"

// DefaultFormConfig returns the built-in customer feedback form used when no
// form has ever been defined. Timestamps are left zero; the store fills them
// in on insert.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		ID:          DefaultFormID,
		Title:       "Customer Feedback Form",
		Description: "Please share your feedback with us",
		Fields: []FormField{
			{
				ID:          "name",
				Name:        "name",
				Label:       "Full Name",
				Type:        FieldText,
				Required:    true,
				Placeholder: "Enter your full name",
			},
			{
				ID:          "email",
				Name:        "email",
				Label:       "Email Address",
				Type:        FieldEmail,
				Required:    true,
				Placeholder: "you@example.com",
			},
			{
				ID:          "feedback",
				Name:        "feedback",
				Label:       "Your Feedback",
				Type:        FieldTextarea,
				Required:    true,
				Placeholder: "Tell us what you think...",
			},
			{
				ID:       "rating",
				Name:     "rating",
				Label:    "Overall Rating",
				Type:     FieldSelect,
				Required: true,
				Options: []string{
					"5 - Excellent",
					"4 - Good",
					"3 - Average",
					"2 - Poor",
					"1 - Very Poor",
				},
			},
			{
				ID:       "subscribe",
				Name:     "subscribe",
				Label:    "Subscribe to our newsletter",
				Type:     FieldCheckbox,
				Required: false,
			},
		},
		IsPrimary:  true,
		IsArchived: false,
	}
}
