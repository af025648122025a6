package api

import (
	"net/http"

	"github.com/brisaweb/marketing-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type publisherHandler struct {
	responder Responder
	logger    zerolog.Logger
	publisher *services.ScheduledPublisher
}

func newPublisherHandler(publisher *services.ScheduledPublisher) publisherHandler {
	logger := log.With().Str("handlerName", "publisherHandler").Logger()

	return publisherHandler{
		responder: NewResponder(logger),
		logger:    logger,
		publisher: publisher,
	}
}

// publishScheduled runs one publisher sweep over due posts. The cron
// caller gets a 200 with the per-post summary even when individual
// posts fail; only a broken scan surfaces as an error.
func (h publisherHandler) publishScheduled() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.publisher.Run(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, summary)
	}
}
