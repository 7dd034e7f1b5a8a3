package handler

import (
	"planner-auth/internal/account"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// publicUser is the account projection clients may see.
type publicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type loginData struct {
	User         publicUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

type tokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userData struct {
	User publicUser `json:"user"`
}

func toPublicUser(a *account.Account) publicUser {
	return publicUser{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		AvatarURL: a.AvatarURL,
	}
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}
