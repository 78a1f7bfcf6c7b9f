package web

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
)

// Respond converts a Go value to JSON and sends it to the client.
func Respond(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {

	// Set the status code for the request logger middleware.
	SetStatusCode(ctx, statusCode)

	// If there is nothing to marshal then set status code and return.
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	// Convert the response value to JSON.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	// Set the content type and headers once we know marshaling has succeeded.
	w.Header().Set("Content-Type", "application/json")

	// Write the status code to the response.
	w.WriteHeader(statusCode)

	// Send the result back to the client.
	if _, err := w.Write(jsonData); err != nil {
		return err
	}

	return nil
}

// Render executes the named template with the data and sends the HTML to
// the client. Nothing is written when the template fails.
func Render(ctx context.Context, w http.ResponseWriter, tmpl *template.Template, name string, data any, statusCode int) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	SetStatusCode(ctx, statusCode)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect replies to the request with a redirect to the location.
func Redirect(ctx context.Context, w http.ResponseWriter, r *http.Request, location string, statusCode int) error {
	SetStatusCode(ctx, statusCode)

	http.Redirect(w, r, location, statusCode)
	return nil
}
