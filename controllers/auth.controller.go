package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"savoria/initializers"
	"savoria/models"
	"savoria/utils"
)

func SignUpUser(c *fiber.Ctx) error {
	var payload models.SignUpInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not hash password",
		})
	}

	user := models.User{
		Email:       strings.ToLower(payload.Email),
		Password:    string(hashedPassword),
		FullName:    payload.FullName,
		PhoneNumber: payload.PhoneNumber,
		Role:        models.RoleCustomer,
	}

	if err := initializers.DB.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "fail",
				"message": "User with that email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create user",
		})
	}

	utils.SendEmail(user.Email, "Welcome to Savoria",
		fmt.Sprintf("<p>Hi %s, your account is ready. Bon appetit!</p>", user.FullName))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": models.FilterUserRecord(&user)},
	})
}

func SignInUser(c *fiber.Ctx) error {
	var payload models.SignInInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var user models.User
	err := initializers.DB.Where("email = ?", strings.ToLower(payload.Email)).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid email or password",
		})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Account is blocked",
		})
	}

	config := initializers.AppConfig
	accessToken, _, err := utils.GenerateToken(user.ID, config.AccessTokenMaxAge, config.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not generate token",
		})
	}
	refreshToken, _, err := utils.GenerateToken(user.ID, config.RefreshTokenMaxAge, config.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not generate token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		MaxAge:   int(config.AccessTokenMaxAge.Seconds()),
		HTTPOnly: true,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"status":        "success",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          models.FilterUserRecord(&user),
	})
}

// LogoutUser revokes the current access token by denylisting its jti until
// it would have expired anyway.
func LogoutUser(c *fiber.Ctx) error {
	claims, ok := c.Locals("token_claims").(*utils.TokenClaims)
	if ok && initializers.RedisClient != nil {
		ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
		if ttl > 0 {
			initializers.RedisClient.Set(context.Background(), "denylist:"+claims.TokenID, "revoked", ttl)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:    "access_token",
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	return c.JSON(fiber.Map{"status": "success", "message": "Logged out"})
}

func RefreshAccessToken(c *fiber.Ctx) error {
	var payload struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	config := initializers.AppConfig
	claims, err := utils.ValidateToken(payload.RefreshToken, config.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid refresh token",
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "The user belonging to this token no longer exists",
		})
	}

	accessToken, _, err := utils.GenerateToken(user.ID, config.AccessTokenMaxAge, config.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "access_token": accessToken})
}

// ForgotPassword always answers success so the endpoint cannot be used to
// probe which emails are registered.
func ForgotPassword(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var user models.User
	err := initializers.DB.Where("email = ?", strings.ToLower(payload.Email)).First(&user).Error
	if err == nil {
		config := initializers.AppConfig
		resetToken, _, tokenErr := utils.GenerateToken(user.ID, 15*time.Minute, config.JwtSecret)
		if tokenErr == nil {
			link := fmt.Sprintf("%s/reset-password?token=%s", config.ClientOrigin, resetToken)
			utils.SendEmail(user.Email, "Reset your password",
				fmt.Sprintf("<p>Follow <a href=%q>this link</a> to reset your password. The link expires in 15 minutes.</p>", link))
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "If that email is registered, a reset link has been sent",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	var payload struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	claims, err := utils.ValidateToken(payload.Token, initializers.AppConfig.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid or expired reset token",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not hash password",
		})
	}

	result := initializers.DB.Model(&models.User{}).Where("id = ?", claims.UserID).
		Update("password", string(hashedPassword))
	if result.Error != nil || result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Password has been reset"})
}
