package api

import (
	"github.com/brisaweb/marketing-site-backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler  blogPostHandler
	taxonomyHandler  taxonomyHandler
	pipelineHandler  pipelineHandler
	publisherHandler publisherHandler
	languageHandler  languageHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps Deps) *routeHandlers {
	return &routeHandlers{
		blogPostHandler:  newBlogPostHandler(database.BlogPostRepo(), database.BlogTagRepo(), database.BlogJobRepo(), deps.PostAdmin, deps.Audit),
		taxonomyHandler:  newTaxonomyHandler(database.BlogCategoryRepo(), database.BlogTagRepo()),
		pipelineHandler:  newPipelineHandler(deps.TextGenerator, deps.ImageGenerator),
		publisherHandler: newPublisherHandler(deps.Publisher),
		languageHandler:  newLanguageHandler(deps.Language),
	}
}
