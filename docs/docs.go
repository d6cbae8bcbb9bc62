// Package docs CoRDial CMS API.
//
// Documentation of the CoRDial CMS JSON endpoints.
//
//     Schemes: http, https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/api/handlers"
	"github.com/cordial-cms/cordial-cms/medication"
	"github.com/cordial-cms/cordial-cms/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api and the last backend ping.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/metrics metrics metricsEndpointID
// Request counts, error rates and latencies per route.
// responses:
//   200: metricsResponse

// swagger:response metricsResponse
type metricsResponseWrapper struct {
	// in:body
	Body api.MetricsSummary
}

// swagger:parameters validateMedication renderMedication
type medicationRequestWrapper struct {
	// in:body
	Body handlers.MedicationRequest
}

// swagger:route POST /api/medication/validate medication validateMedication
// Live feedback for the medication field of a persona form.
// responses:
//   200: medicationValidationResponse
//   400: errorMessageResponse

// swagger:response medicationValidationResponse
type medicationValidationResponseWrapper struct {
	// in:body
	Body handlers.MedicationValidation
}

// swagger:route POST /api/medication/render medication renderMedication
// Renders a medication schedule, or the fallback line when it does not parse.
// responses:
//   200: medicationDisplayResponse
//   400: errorMessageResponse

// swagger:response medicationDisplayResponse
type medicationDisplayResponseWrapper struct {
	// in:body
	Body medication.Display
}

// swagger:route GET /api/v1/personas personaDocuments listPersonaDocuments
// Lists the persona documents in the document store.
// responses:
//   200: personaDocumentsResponse
//   500: errorMessageResponse

// swagger:response personaDocumentsResponse
type personaDocumentsResponseWrapper struct {
	// in:body
	Body []models.PersonaDocument
}

// swagger:route GET /api/v1/personas/{id} personaDocuments personaDocumentByID
// Gets a single persona document by ID.
// responses:
//   200: personaDocumentResponse
//   404: errorMessageResponse

// swagger:route PUT /api/v1/personas/{id} personaDocuments replacePersonaDocument
// Overwrites a persona document.
// responses:
//   200: personaDocumentResponse
//   400: errorMessageResponse
//   404: errorMessageResponse

// swagger:response personaDocumentResponse
type personaDocumentResponseWrapper struct {
	// in:body
	Body models.PersonaDocument
}

// swagger:route POST /api/v1/personas personaDocuments createPersonaDocument
// Inserts a persona document.
// responses:
//   201: createdResponse
//   400: errorMessageResponse

// swagger:response createdResponse
type createdResponseWrapper struct {
	// in:body
	Body handlers.CreatedResponse
}

// swagger:response errorMessageResponse
type errorMessageResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
