package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LanguageDetection is the answer handed back to the site: the language
// to render, the detected country, and the IP it was derived from.
type LanguageDetection struct {
	Language    string `json:"language"`
	CountryCode string `json:"countryCode"`
	IP          string `json:"ip"`
}

// LanguageDetector resolves a visitor's language from their IP via a
// geolocation lookup. Portuguese for Brazil, English for everyone else.
// Detection never fails the caller; any lookup problem degrades to the
// English default.
type LanguageDetector struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		endpoint:   "http://ip-api.com/json",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     log.With().Str("serviceName", "languageDetector").Logger(),
	}
}

// Detect geolocates the IP and maps the country to a site language.
func (d *LanguageDetector) Detect(ctx context.Context, clientIP string) LanguageDetection {
	countryCode := d.detectCountry(ctx, clientIP)

	language := "en"
	if countryCode == "BR" {
		language = "pt"
	}

	return LanguageDetection{
		Language:    language,
		CountryCode: countryCode,
		IP:          clientIP,
	}
}

func (d *LanguageDetector) detectCountry(ctx context.Context, ip string) string {
	if isPrivateIP(ip) {
		// Local development defaults to English.
		return "US"
	}

	url := fmt.Sprintf("%s/%s?fields=countryCode", d.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "US"
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Warn().Err(err).Str("ip", ip).Msg("geolocation lookup failed")
		return "US"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "US"
	}

	var payload struct {
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.CountryCode == "" {
		return "US"
	}
	return payload.CountryCode
}

func isPrivateIP(ip string) bool {
	return ip == "127.0.0.1" ||
		ip == "::1" ||
		strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "172.")
}
