package models

// FormOption is one dropdown choice surfaced to the checkout form.
type FormOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Shapes of the marketing-forms provider response. Options live either on
// top-level fields or nested inside field groups depending on form version.
type HubSpotOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type HubSpotField struct {
	Name      string          `json:"name"`
	FieldType string          `json:"fieldType"`
	Options   []HubSpotOption `json:"options"`
}

type HubSpotFieldGroup struct {
	Fields []HubSpotField `json:"fields"`
}

type HubSpotForm struct {
	Fields      []HubSpotField      `json:"fields"`
	FieldGroups []HubSpotFieldGroup `json:"fieldGroups"`
}

// FormOptionsResponse is the payload of the option endpoints; Source tells
// the UI whether it got live data, a cache hit, or the static fallback.
type FormOptionsResponse struct {
	Options []FormOption `json:"options"`
	Source  string       `json:"source"`
}
