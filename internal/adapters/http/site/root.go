// Package site serves the browser preview of the clock: the live frame, the
// LED ring and the two buttons.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded preview page to mux at "/".
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
