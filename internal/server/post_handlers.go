package server

import (
	"log/slog"
	"mime/multipart"
	"strings"

	"medconnect/internal/middleware"
	"medconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts
func (s *Server) GetFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GetFeed(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(feed)
}

// CreatePost handles POST /api/posts. It accepts JSON {content, image} or a
// multipart form with a "content" field and an optional "image" file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	accountID := currentAccountID(c)

	var (
		content  string
		image    *string
		uploaded string
	)

	if isMultipart(c) {
		content = c.FormValue("content")
		if fh, err := c.FormFile("image"); err == nil {
			path, err := s.saveUpload(fh)
			if err != nil {
				return fail(c, err)
			}
			uploaded = path
			image = &uploaded
		}
	} else {
		var req struct {
			Content string  `json:"content"`
			Image   *string `json:"image"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
		content = req.Content
		if req.Image != nil && *req.Image != "" {
			image = req.Image
		}
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AccountID: accountID,
		Content:   content,
		Image:     image,
	})
	if err != nil {
		s.discardUpload(c, uploaded)
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"postId": post.ID})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentAccountID(c), postID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.UserContext(), currentAccountID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// AddComment handles POST /api/posts/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		AccountID: currentAccountID(c),
		PostID:    postID,
		Content:   req.Content,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"commentId": comment.ID})
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func (s *Server) saveUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return s.uploadService.Save(fh.Filename, f)
}

// discardUpload removes a file saved for a request that then failed.
func (s *Server) discardUpload(c *fiber.Ctx, path string) {
	if path == "" {
		return
	}
	if err := s.uploadService.Remove(path); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to remove orphaned upload",
			slog.String("path", path), slog.String("error", err.Error()))
	}
}
