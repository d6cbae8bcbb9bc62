package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persona holds the structure the backend REST API serves for a persona
type Persona struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Medication         string `json:"medication"`
	PersonaDescription string `json:"persona_description"`
	IsVisuallyImpaired bool   `json:"is_visually_impaired"`
	// IsDefault is derived from the current default pointer and never sent
	IsDefault bool `json:"-"`
}

// Fields returns the four mutable fields of the persona
func (p Persona) Fields() PersonaFields {
	return PersonaFields{
		Name:               p.Name,
		Medication:         p.Medication,
		PersonaDescription: p.PersonaDescription,
		IsVisuallyImpaired: p.IsVisuallyImpaired,
	}
}

// WithFields returns a copy of the persona with the mutable fields replaced
func (p Persona) WithFields(f PersonaFields) Persona {
	p.Name = f.Name
	p.Medication = f.Medication
	p.PersonaDescription = f.PersonaDescription
	p.IsVisuallyImpaired = f.IsVisuallyImpaired
	return p
}

// PersonaFields is the request body for add_persona and the replaced part of edit_persona
type PersonaFields struct {
	Name               string `json:"name"`
	Medication         string `json:"medication"`
	PersonaDescription string `json:"persona_description"`
	IsVisuallyImpaired bool   `json:"is_visually_impaired"`
}

// EditPersonaRequest is the request body for edit_persona
type EditPersonaRequest struct {
	ID string `json:"id"`
	PersonaFields
}

// DefaultPersonaRequest is the request body for make_persona_default
type DefaultPersonaRequest struct {
	PersonaID string `json:"persona_id"`
}

// PersonaDocument holds the structure for the personas collection in mongo. The field
// names differ from Persona and the two are never reconciled.
type PersonaDocument struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Medications string             `json:"medications" bson:"medications"`
	Description string             `json:"description" bson:"description"`
	IsDefault   bool               `json:"isDefault" bson:"isDefault"`
}
