package services

import (
	"time"

	"github.com/jalencar/clean-blog/database"
	"github.com/jalencar/clean-blog/errs"
	"github.com/jalencar/clean-blog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// dateLabelLayout renders dates the way the blog pages show them,
// e.g. "August 31, 2026".
const dateLabelLayout = "January 2, 2006"

// PostInput carries the fields submitted by the create/edit forms. The
// handlers validate shape (required, URL format, length bounds); the
// service owns the title-uniqueness rule.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

type PostService struct {
	logger zerolog.Logger
	posts  *database.BlogPostRepo
}

func NewPostService(posts *database.BlogPostRepo) *PostService {
	return &PostService{
		logger: log.With().Str("serviceName", "postService").Logger(),
		posts:  posts,
	}
}

// List returns every post in insertion order.
func (s *PostService) List() ([]*models.BlogPost, error) {
	posts, err := s.posts.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog posts", err)
	}
	return posts, nil
}

// Get returns the post with the given id or a typed not-found error.
func (s *PostService) Get(id uint) (*models.BlogPost, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	if post == nil {
		return nil, errs.NewNotFoundError("blog post")
	}
	return post, nil
}

// Create persists a new post attributed to author. A duplicate title is
// rejected before the insert so the form can show it as a field error;
// the unique index remains the backstop for races.
func (s *PostService) Create(input PostInput, author *models.User) (*models.BlogPost, error) {
	taken, err := s.posts.TitleTaken(input.Title, 0)
	if err != nil {
		return nil, errs.NewDatabaseError("check title of", "blog post", err)
	}
	if taken {
		return nil, errs.NewConflictErrorWithField("a post with that title already exists", "title")
	}

	post := &models.BlogPost{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Date:     CurrentDateLabel(),
		Body:     input.Body,
		ImgURL:   input.ImgURL,
		AuthorID: author.ID,
	}
	if err := s.posts.Add(post); err != nil {
		return nil, errs.NewDatabaseError("create", "blog post", err)
	}

	s.logger.Info().Uint("postID", post.ID).Str("title", post.Title).Msg("Created blog post")
	return post, nil
}

// Update overwrites title/subtitle/body/img_url of an existing post. The
// id and the original Date are preserved.
func (s *PostService) Update(id uint, input PostInput) (*models.BlogPost, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	taken, err := s.posts.TitleTaken(input.Title, id)
	if err != nil {
		return nil, errs.NewDatabaseError("check title of", "blog post", err)
	}
	if taken {
		return nil, errs.NewConflictErrorWithField("a post with that title already exists", "title")
	}

	post.Title = input.Title
	post.Subtitle = input.Subtitle
	post.Body = input.Body
	post.ImgURL = input.ImgURL

	if err := s.posts.Update(post); err != nil {
		return nil, errs.NewDatabaseError("update", "blog post", err)
	}

	s.logger.Info().Uint("postID", post.ID).Msg("Updated blog post")
	return post, nil
}

// Delete removes a post. Deleting an id that no longer exists is not an
// error; the listing is the same either way.
func (s *PostService) Delete(id uint) error {
	if err := s.posts.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "blog post", err)
	}
	s.logger.Info().Uint("postID", id).Msg("Deleted blog post")
	return nil
}

// CurrentDateLabel formats the wall-clock date for the page headers. It is
// independent of any post's own Date field.
func CurrentDateLabel() string {
	return time.Now().Format(dateLabelLayout)
}
