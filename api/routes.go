package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Interactive routes require a user
// token; the publisher trigger requires the service credential; language
// detection is public (it runs before the visitor has a session).
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/detect-language", handlers.languageHandler.detectLanguage())
	})

	// Authenticated editor routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog Post endpoints
		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
		r.Post("/blog-post/{blogPostID}/publish", handlers.blogPostHandler.publishBlogPost())
		r.Post("/blog-post/{blogPostID}/schedule", handlers.blogPostHandler.scheduleBlogPost())
		r.Post("/blog-post/{blogPostID}/archive", handlers.blogPostHandler.archiveBlogPost())
		r.Post("/blog-post/{blogPostID}/duplicate", handlers.blogPostHandler.duplicateBlogPost())
		r.Get("/blog-post/{blogPostID}/jobs", handlers.blogPostHandler.getBlogPostJobs())

		// Generation endpoints
		r.Post("/blog-post/{blogPostID}/generate-text", handlers.pipelineHandler.generateText())
		r.Post("/blog-post/{blogPostID}/generate-image", handlers.pipelineHandler.generateImage())

		// Category endpoints
		r.Get("/categories", handlers.taxonomyHandler.getAllCategories())
		r.Post("/category", handlers.taxonomyHandler.createCategory())
		r.Put("/category/{categoryID}", handlers.taxonomyHandler.updateCategory())
		r.Delete("/category/{categoryID}", handlers.taxonomyHandler.deleteCategory())

		// Tag endpoints
		r.Get("/tags", handlers.taxonomyHandler.getAllTags())
		r.Post("/tag", handlers.taxonomyHandler.createTag())
		r.Delete("/tag/{tagID}", handlers.taxonomyHandler.deleteTag())
	})

	// Service routes (external periodic trigger)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireService)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/jobs/publish-scheduled", handlers.publisherHandler.publishScheduled())
	})
}
