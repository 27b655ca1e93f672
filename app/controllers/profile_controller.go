package controllers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/framelessmedia/payportal/app/repository"
	"github.com/framelessmedia/payportal/internal/pkg/i18n"
	"github.com/framelessmedia/payportal/internal/pkg/usercontext"
)

// ProfileController backs the "edit my data" modal on the account page.
// The form posts here and expects a small JSON envelope back.
type ProfileController struct {
	users    repository.UserRepository
	tr       *i18n.Translations
	validate *validator.Validate
}

var profileController *ProfileController

func InitializeProfileController() {
	repos := repository.GetGlobalRepositories()
	profileController = &ProfileController{
		users:    repos.User,
		tr:       i18n.New(),
		validate: validator.New(),
	}
}

type profileUpdateInput struct {
	Name            string `form:"name" validate:"omitempty,min=3,max=100"`
	Password        string `form:"password" validate:"omitempty,min=8"`
	PasswordConfirm string `form:"password_confirm"`
	ReturnURL       string `form:"return_url"`
}

type profileUpdateResponse struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// HandleProfileUpdate serves POST /account/profile. Name and password are
// both optional; an empty field leaves the stored value untouched.
func HandleProfileUpdate(c *fiber.Ctx) error {
	ctrl := profileController
	userCtx := usercontext.GetUserContext(c)

	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(profileUpdateResponse{
			Error: ctrl.tr.T("api.not_signed_in"),
		})
	}

	var input profileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(profileUpdateResponse{
			Error: "invalid form data",
		})
	}
	input.Name = strings.TrimSpace(input.Name)

	if err := ctrl.validate.Struct(input); err != nil {
		msg := "invalid form data"
		for _, fe := range err.(validator.ValidationErrors) {
			if fe.Field() == "Password" {
				msg = ctrl.tr.T("api.password.too_short")
				break
			}
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(profileUpdateResponse{Error: msg})
	}
	if input.Password != "" && input.Password != input.PasswordConfirm {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(profileUpdateResponse{
			Error: ctrl.tr.T("api.password.mismatch"),
		})
	}

	user, err := ctrl.users.GetByID(userCtx.UserID)
	if err != nil {
		log.Printf("profile: loading user %d failed: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(profileUpdateResponse{
			Error: "update failed",
		})
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			log.Printf("profile: hashing password for user %d failed: %v", userCtx.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(profileUpdateResponse{
				Error: "update failed",
			})
		}
	}

	if err := ctrl.users.Update(user); err != nil {
		log.Printf("profile: updating user %d failed: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(profileUpdateResponse{
			Error: "update failed",
		})
	}

	return c.JSON(profileUpdateResponse{
		OK:       true,
		Message:  ctrl.tr.T("api.profile_updated"),
		Redirect: sanitizeReturnURL(c, input.ReturnURL),
	})
}
