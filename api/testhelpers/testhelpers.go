// Package testhelpers holds the request and mock wiring shared by handler and database tests
package testhelpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cordial-cms/cordial-cms/databases/mocks"
)

// MockCollection returns a DatabaseHelper mock that hands out a CollectionHelper mock for name
func MockCollection(name string) (*mocks.DatabaseHelper, *mocks.CollectionHelper) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper.On("Collection", name).Return(collectionHelper)
	return dbHelper, collectionHelper
}

// ExecuteRequest serves req and records the response
func ExecuteRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// CheckResponseCode fails the test when the status codes differ
func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}
