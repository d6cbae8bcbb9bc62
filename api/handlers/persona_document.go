package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/config"
	"github.com/cordial-cms/cordial-cms/databases"
	"github.com/cordial-cms/cordial-cms/models"
)

// PersonaDocument exposes the personas collection of the document store
type PersonaDocument struct {
	DB databases.PersonaDocumentDatabase
}

// CreatedResponse is returned after an insert
type CreatedResponse struct {
	ID string `json:"id"`
}

// ListHandler returns every persona document
func (h PersonaDocument) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := h.DB.List(ctx)
	if err != nil {
		config.ErrorStatus("failed to get persona documents", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, docs)
}

// GetHandler returns a single persona document
func (h PersonaDocument) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	doc, err := h.DB.Get(ctx, id)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("persona document not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get persona document", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, doc)
}

// CreateHandler inserts a persona document
func (h PersonaDocument) CreateHandler(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodePersonaDocument(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := h.DB.Create(ctx, doc)
	if err != nil {
		config.ErrorStatus("failed to create persona document", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// ReplaceHandler overwrites a persona document
func (h PersonaDocument) ReplaceHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, ok := decodePersonaDocument(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := h.DB.Replace(ctx, id, doc)
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus("persona document not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to replace persona document", http.StatusInternalServerError, w, err)
		return
	}
	doc.ID, _ = primitive.ObjectIDFromHex(id)
	api.WriteJSON(w, http.StatusOK, doc)
}

func decodePersonaDocument(w http.ResponseWriter, r *http.Request) (models.PersonaDocument, bool) {
	var doc models.PersonaDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return doc, false
	}
	if strings.TrimSpace(doc.Name) == "" {
		config.ErrorStatus("name is required", http.StatusBadRequest, w, errors.New("missing name"))
		return doc, false
	}
	return doc, true
}
