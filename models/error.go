package models

// ErrorMessageResponse is the JSON body written for handler errors
type ErrorMessageResponse struct {
	Response string `json:"response"`
}
