package database

import (
	"errors"

	"github.com/jalencar/clean-blog/models"
	"gorm.io/gorm"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all blog posts in primary-key order, each with its author
// preloaded.
func (r *BlogPostRepo) FindAll() ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.Preload("Author").Order("id").Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID, or (nil, nil) when no post has
// that ID.
func (r *BlogPostRepo) FindByID(id uint) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Author").First(&blogPost, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// TitleTaken reports whether another post already uses the given title.
// excludeID lets the edit flow skip the post being edited.
func (r *BlogPostRepo) TitleTaken(title string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).
		Where("title = ? AND id <> ?", title, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(blogPost *models.BlogPost) error {
	return r.db.Create(blogPost).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(blogPost *models.BlogPost) error {
	return r.db.Save(blogPost).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}
