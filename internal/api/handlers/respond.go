package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers] encode response: %v", err)
	}
}

// writeDetail writes the error body shape used across the API.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Basic")
	writeDetail(w, http.StatusUnauthorized, "Not authenticated")
}

type link struct {
	url string
	rel string
}

// setLinks writes a hypermedia Link header: `<url>; rel="x"` entries joined
// by commas.
func setLinks(w http.ResponseWriter, links ...link) {
	if len(links) == 0 {
		return
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("<%s>; rel=%q", l.url, l.rel))
	}
	w.Header().Set("Link", strings.Join(parts, ","))
}
