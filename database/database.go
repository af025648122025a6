package database

import (
	"gorm.io/gorm"
)

type Database struct {
	blogPostRepo     *BlogPostRepo
	blogJobRepo      *BlogJobRepo
	blogCategoryRepo *BlogCategoryRepo
	blogTagRepo      *BlogTagRepo
	auditLogRepo     *AuditLogRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo:     NewBlogPostRepo(db),
		blogJobRepo:      NewBlogJobRepo(db),
		blogCategoryRepo: NewBlogCategoryRepo(db),
		blogTagRepo:      NewBlogTagRepo(db),
		auditLogRepo:     NewAuditLogRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogJobRepo() *BlogJobRepo {
	return d.blogJobRepo
}

func (d Database) BlogCategoryRepo() *BlogCategoryRepo {
	return d.blogCategoryRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) AuditLogRepo() *AuditLogRepo {
	return d.auditLogRepo
}
