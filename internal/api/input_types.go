package api

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type credentialsInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	RememberMe  bool   `json:"remember_me"`
}

type startActivityInput struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

type createCircleInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type joinCircleInput struct {
	Code string `json:"code"`
}

const minPasswordLength = 8

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return credentialsInput{}, err
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	return input, nil
}

func validateRegistrationCredentials(input credentialsInput) error {
	if input.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return errors.New("invalid email")
	}
	if len(input.Password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
