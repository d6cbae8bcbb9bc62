package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/config"
	"github.com/cordial-cms/cordial-cms/medication"
	"github.com/cordial-cms/cordial-cms/views"
)

// MedicationRequest is the body of the medication endpoints
type MedicationRequest struct {
	Medication string `json:"medication"`
	Variant    string `json:"variant,omitempty"`
}

// MedicationValidation is the live feedback for the medication field
type MedicationValidation struct {
	Valid bool   `json:"valid"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// Medication serves the live preview endpoints of the persona forms
type Medication struct{}

// ValidateHandler reports whether the medication text is well-formed JSON
func (h Medication) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req MedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	form := views.NewCreateForm(nil)
	form.Set(views.FieldMedication, req.Medication)

	api.WriteJSON(w, http.StatusOK, MedicationValidation{
		Valid: medication.IsValid(req.Medication),
		State: form.State(views.FieldMedication).String(),
		Error: form.FieldError(views.FieldMedication),
	})
}

// RenderHandler renders the medication text the way a persona card shows it
func (h Medication) RenderHandler(w http.ResponseWriter, r *http.Request) {
	var req MedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, medication.Present(req.Medication, medication.ParseVariant(req.Variant)))
}
