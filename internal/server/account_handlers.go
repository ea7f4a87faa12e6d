package server

import (
	"medconnect/internal/models"
	"medconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Specialization string `json:"specialization"`
		Password       string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if _, err := s.accountService.Signup(c.UserContext(), service.SignupInput{
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
		Password:       req.Password,
	}); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Doctor registered successfully",
	})
}

// Login handles POST /api/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := s.accountService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token":  res.Token,
		"doctor": res.Account.Summary(),
	})
}

// Me handles GET /api/me
func (s *Server) Me(c *fiber.Ctx) error {
	account, err := s.accountService.Me(c.UserContext(), currentAccountID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(account.Summary())
}

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	account, err := s.accountService.Profile(c.UserContext(), currentAccountID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(account.Profile())
}

// UpdateProfile handles PUT /api/profile. A multipart request may carry a
// "profile_image" file.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name       string `json:"name" form:"name"`
		About      string `json:"about" form:"about"`
		Profession string `json:"profession" form:"profession"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	update := models.ProfileUpdate{
		Name:       req.Name,
		About:      req.About,
		Profession: req.Profession,
	}

	var uploaded string
	if isMultipart(c) {
		if fh, err := c.FormFile("profile_image"); err == nil {
			path, err := s.saveUpload(fh)
			if err != nil {
				return fail(c, err)
			}
			uploaded = path
			update.ProfileImage = &uploaded
		}
	}

	account, err := s.accountService.UpdateProfile(c.UserContext(), currentAccountID(c), update)
	if err != nil {
		s.discardUpload(c, uploaded)
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": account.Profile(),
	})
}
