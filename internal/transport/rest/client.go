package rest

import (
	_ "embed"
	"net/http"
)

//go:embed client.js
var clientJS []byte

// ClientScript serves the embedded browser helper that wires a plain HTML
// form to the intake endpoint.
func ClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(clientJS) //nolint:errcheck
}
