package api

import (
	"encoding/json"
	"net/http"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pipelineHandler struct {
	responder      Responder
	logger         zerolog.Logger
	textGenerator  *services.TextGenerator
	imageGenerator *services.ImageGenerator
}

func newPipelineHandler(textGenerator *services.TextGenerator, imageGenerator *services.ImageGenerator) pipelineHandler {
	logger := log.With().Str("handlerName", "pipelineHandler").Logger()

	return pipelineHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		textGenerator:  textGenerator,
		imageGenerator: imageGenerator,
	}
}

// generateText runs a synchronous text-generation pass for a post. The
// request blocks until the gateway answers, matching the editor's
// progress UI which polls the job ledger for the outcome.
func (h pipelineHandler) generateText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var input services.GenerateTextInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode generate-text request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		input.PostID = blogPostID

		content, err := h.textGenerator.Generate(r.Context(), actorID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, content)
	}
}

// generateImage produces a cover image for a post
func (h pipelineHandler) generateImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var input services.GenerateImageInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode generate-image request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		input.PostID = blogPostID

		image, err := h.imageGenerator.Generate(r.Context(), actorID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, image)
	}
}
