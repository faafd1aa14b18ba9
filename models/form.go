package models

import "strings"

// FormField is the metadata of one forms-plugin field
type FormField struct {
	ID         FlexString `json:"id"`
	Label      string     `json:"label,omitempty"`
	Type       string     `json:"type"`
	InputType  string     `json:"inputType,omitempty"`
	IsRequired FlexBool   `json:"isRequired,omitempty"`
}

// IsArray reports whether the plugin expects a list value for this field
func (f FormField) IsArray() bool {
	switch strings.ToLower(f.Type) {
	case "checkbox", "multiselect", "list":
		return true
	}
	switch strings.ToLower(f.InputType) {
	case "checkbox", "multiselect", "list":
		return true
	}
	return false
}

// FormMeta is the field metadata of a forms-plugin form
type FormMeta struct {
	ID     FlexString  `json:"id"`
	Title  string      `json:"title,omitempty"`
	Fields []FormField `json:"fields"`
}

// ArrayFields returns the ids of fields that take list values
func (m *FormMeta) ArrayFields() map[string]bool {
	out := make(map[string]bool)
	if m == nil {
		return out
	}
	for _, f := range m.Fields {
		if f.IsArray() {
			out[f.ID.String()] = true
		}
	}
	return out
}
