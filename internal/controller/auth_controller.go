package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/config"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/email"
	"tokodigital_backend/pkg/utils/jwt"
)

var appConfig *config.Config

func InitAuthController(cfg *config.Config) {
	appConfig = cfg
}

type RegisterInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"required"`
	StoreName string `json:"store_name"`
	Subdomain string `json:"subdomain" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func sendTokenResponse(c *fiber.Ctx, user *model.User, statusCode int) error {
	token, err := jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
	})

	return c.Status(statusCode).JSON(fiber.Map{
		"token": token,
		"user":  user.GetPublicProfile(),
	})
}

// Register kullanıcı + mağaza + trial aboneliği tek akışta oluşturur
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var existingUser model.User
	if err := database.GetDB().Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	var existingStore model.Store
	if err := database.GetDB().Where("subdomain = ?", input.Subdomain).First(&existingStore).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subdomain already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	storeName := input.StoreName
	if storeName == "" {
		storeName = fmt.Sprintf("%s's Store", input.Name)
	}

	var user model.User
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		user = model.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashedPassword),
			Phone:    input.Phone,
			Role:     model.RoleStoreOwner,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		store := model.Store{
			OwnerID:        user.ID,
			Name:           storeName,
			Subdomain:      input.Subdomain,
			WhatsAppNumber: input.Phone,
			Email:          input.Email,
			Theme:          datatypes.NewJSONType(model.DefaultTheme()),
		}
		if err := tx.Create(&store).Error; err != nil {
			return err
		}

		sub := model.NewTrialSubscription(user.ID, store.ID, time.Now())
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		user.StoreID = &store.ID
		user.SubscriptionID = &sub.ID
		return tx.Save(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating account",
		})
	}

	verificationToken, err := user.SetEmailVerificationToken()
	if err == nil {
		if err := database.GetDB().Save(&user).Error; err != nil {
			log.Printf("Could not persist verification token: %v", err)
		}

		if email.GlobalEmailService != nil {
			storeURL := fmt.Sprintf("https://%s.%s", input.Subdomain, appConfig.App.Domain)
			verificationURL := fmt.Sprintf("%s/verify-email/%s", appConfig.App.FrontendURL, verificationToken)

			err := email.GlobalEmailService.SendWelcomeEmail(user.Email, email.WelcomeEmailData{
				Name:            user.Name,
				StoreURL:        storeURL,
				VerificationURL: verificationURL,
				TrialDays:       int(model.TrialPeriod.Hours() / 24),
			})
			if err != nil {
				log.Printf("Could not send welcome email: %v", err)
			}
		}
	}

	return sendTokenResponse(c, &user, fiber.StatusCreated)
}

// Login girişte de trial kontrolü yapar; access guard ile aynı koşullu geçiş
func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Your account has been deactivated",
			"code":  middleware.CodeAccountDisabled,
		})
	}

	var sub model.Subscription
	if err := database.GetDB().Where("user_id = ?", user.ID).First(&sub).Error; err == nil {
		if sub.IsTrialExpired(time.Now()) {
			if err := model.ExpireTrial(database.GetDB(), &sub); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Could not update subscription status",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your free trial has expired. Please subscribe to continue.",
				"code":  middleware.CodeTrialExpired,
			})
		}
	}

	now := time.Now()
	user.LastLogin = &now
	if err := database.GetDB().Save(&user).Error; err != nil {
		log.Printf("Could not update last login for user %d: %v", user.ID, err)
	}

	return sendTokenResponse(c, &user, fiber.StatusOK)
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func GetMe(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	var user model.User
	err := database.GetDB().Preload("Store").Preload("Subscription").First(&user, account.ID).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	return c.JSON(fiber.Map{
		"user":         user.GetPublicProfile(),
		"store":        user.Store,
		"subscription": user.Subscription,
	})
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func UpdateProfile(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	input := new(UpdateProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}

	if err := database.GetDB().Model(account).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating profile",
		})
	}

	return c.JSON(fiber.Map{
		"user": account.GetPublicProfile(),
	})
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func UpdatePassword(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	input := new(UpdatePasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Current password is incorrect",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	if err := database.GetDB().Model(account).Update("password", string(hashedPassword)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating password",
		})
	}

	return sendTokenResponse(c, account, fiber.StatusOK)
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(c *fiber.Ctx) error {
	input := new(ForgotPasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No user found with that email",
		})
	}

	resetToken, err := user.SetResetPasswordToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing request",
		})
	}
	if err := database.GetDB().Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing request",
		})
	}

	if email.GlobalEmailService != nil {
		resetURL := fmt.Sprintf("%s/reset-password/%s", appConfig.App.FrontendURL, resetToken)
		err := email.GlobalEmailService.SendPasswordResetEmail(user.Email, email.PasswordResetData{
			ResetLink: resetURL,
		})
		if err != nil {
			log.Printf("Could not send password reset email: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Email could not be sent",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Email sent",
	})
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

func ResetPassword(c *fiber.Ctx) error {
	input := new(ResetPasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	hashedToken := model.HashToken(c.Params("token"))

	var user model.User
	err := database.GetDB().
		Where("reset_password_token = ? AND reset_password_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	err = database.GetDB().Model(&user).Updates(map[string]interface{}{
		"password":              string(hashedPassword),
		"reset_password_token":  "",
		"reset_password_expire": nil,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error resetting password",
		})
	}

	return sendTokenResponse(c, &user, fiber.StatusOK)
}

func VerifyEmail(c *fiber.Ctx) error {
	hashedToken := model.HashToken(c.Params("token"))

	var user model.User
	err := database.GetDB().
		Where("email_verification_token = ? AND email_verification_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired verification token",
		})
	}

	err = database.GetDB().Model(&user).Updates(map[string]interface{}{
		"is_email_verified":         true,
		"email_verification_token":  "",
		"email_verification_expire": nil,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error verifying email",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}
