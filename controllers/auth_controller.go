// controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"fotostudio-backend/middleware"
	"fotostudio-backend/services"
	"fotostudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPayload struct {
	Email string `json:"email"`
}

type resetPayload struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

type AuthController struct {
	AuthSvc  *services.AuthService
	ResetSvc *services.PasswordResetService
}

func NewAuthController(authSvc *services.AuthService, resetSvc *services.PasswordResetService) *AuthController {
	return &AuthController{AuthSvc: authSvc, ResetSvc: resetSvc}
}

// Register creates a new admin account while the registration cap allows it.
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string][]string{}
	if strings.TrimSpace(payload.Name) == "" {
		fieldErrors["name"] = append(fieldErrors["name"], "The name field is required.")
	}
	validateEmail(fieldErrors, payload.Email)
	validatePassword(fieldErrors, payload.Password, payload.PasswordConfirmation)
	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	user, err := ac.AuthSvc.Register(payload.Name, strings.ToLower(strings.TrimSpace(payload.Email)), payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationClosed):
			c.JSON(http.StatusForbidden, gin.H{"message": "Registrasi sudah ditutup."})
		case errors.Is(err, services.ErrEmailTaken):
			utils.JSONValidationError(c, map[string][]string{
				"email": {"The email has already been taken."},
			})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to register")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registrasi berhasil.",
		"user":    user,
	})
}

// Login issues a bearer token on valid credentials. Unknown email and wrong
// password answer identically.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string][]string{}
	if strings.TrimSpace(payload.Email) == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "The email field is required.")
	}
	if payload.Password == "" {
		fieldErrors["password"] = append(fieldErrors["password"], "The password field is required.")
	}
	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	user, token, err := ac.AuthSvc.Login(strings.ToLower(strings.TrimSpace(payload.Email)), payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Email atau password salah."})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login berhasil.",
		"user":         user,
		"access_token": token,
	})
}

// Logout revokes the presented token. Runs behind RequireAuth so an invalid
// token never reaches here; revoking twice is harmless.
func (ac *AuthController) Logout(c *gin.Context) {
	raw, ok := middleware.BearerToken(c)
	if ok {
		if err := ac.AuthSvc.Logout(raw); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to log out")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout berhasil."})
}

// CheckRegistrationStatus tells the signup form whether registration is open.
func (ac *AuthController) CheckRegistrationStatus(c *gin.Context) {
	open, err := ac.AuthSvc.CanRegister()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check registration status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"canRegister": open})
}

// ForgotPassword issues a reset token and mails the link. The reply never
// discloses whether the email exists.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var payload forgotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string][]string{}
	validateEmail(fieldErrors, payload.Email)
	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	if err := ac.ResetSvc.Forgot(strings.ToLower(strings.TrimSpace(payload.Email))); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to process reset request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Jika email terdaftar, link reset password telah dikirim."})
}

// ResetPassword consumes a reset token and sets the new password.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var payload resetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string][]string{}
	validateEmail(fieldErrors, payload.Email)
	if strings.TrimSpace(payload.Token) == "" {
		fieldErrors["token"] = append(fieldErrors["token"], "The token field is required.")
	}
	validatePassword(fieldErrors, payload.Password, payload.PasswordConfirmation)
	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	err := ac.ResetSvc.Reset(strings.ToLower(strings.TrimSpace(payload.Email)), payload.Token, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			utils.JSONValidationError(c, map[string][]string{
				"token": {"Token reset tidak valid atau sudah kedaluwarsa."},
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password berhasil direset."})
}

func validateEmail(fieldErrors map[string][]string, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "The email field is required.")
		return
	}
	if !emailRegex.MatchString(email) {
		fieldErrors["email"] = append(fieldErrors["email"], "The email must be a valid email address.")
	}
}

func validatePassword(fieldErrors map[string][]string, password, confirmation string) {
	if password == "" {
		fieldErrors["password"] = append(fieldErrors["password"], "The password field is required.")
		return
	}
	if len(password) < minPasswordLen {
		fieldErrors["password"] = append(fieldErrors["password"], "The password must be at least 8 characters.")
	}
	if password != confirmation {
		fieldErrors["password"] = append(fieldErrors["password"], "The password confirmation does not match.")
	}
}
