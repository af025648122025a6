package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/brisaweb/marketing-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type languageHandler struct {
	responder Responder
	logger    zerolog.Logger
	detector  *services.LanguageDetector
}

func newLanguageHandler(detector *services.LanguageDetector) languageHandler {
	logger := log.With().Str("handlerName", "languageHandler").Logger()

	return languageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		detector:  detector,
	}
}

// detectLanguage resolves the caller's preferred site language from
// their IP. Always answers 200; lookup failures fall back to English.
func (h languageHandler) detectLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detection := h.detector.Detect(r.Context(), clientIP(r))
		h.responder.WriteJSON(w, detection)
	}
}

// clientIP picks the caller's address from proxy headers, falling back
// to the socket peer. The CDN header wins when present.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("cf-connecting-ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("x-real-ip"); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("x-forwarded-for"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
