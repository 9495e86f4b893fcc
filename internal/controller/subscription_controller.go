package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"

	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/config"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/subscription"

	"gorm.io/datatypes"
)

var stripeWebhookSecret string

func InitSubscriptionController(cfg *config.Config) {
	stripe.Key = cfg.Stripe.SecretKey
	stripeWebhookSecret = cfg.Stripe.WebhookSecret
}

// ListPlans plan kataloğunu döner, auth gerektirmez
func ListPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"free":         subscription.GetPlanDetails(subscription.FreePlan),
			"starter":      subscription.GetPlanDetails(subscription.StarterPlan),
			"professional": subscription.GetPlanDetails(subscription.ProfessionalPlan),
			"enterprise":   subscription.GetPlanDetails(subscription.EnterprisePlan),
		},
	})
}

func GetMySubscription(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	var sub model.Subscription
	if err := database.GetDB().Where("user_id = ?", account.ID).First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No subscription found",
		})
	}

	return c.JSON(fiber.Map{
		"data": sub,
	})
}

// stripePriceID plan+cycle için Stripe price ID'sini env'den okur,
// ör. STRIPE_PRICE_STARTER_MONTHLY
func stripePriceID(plan subscription.PlanType, cycle model.BillingCycle) string {
	key := fmt.Sprintf("STRIPE_PRICE_%s_%s", strings.ToUpper(string(plan)), strings.ToUpper(string(cycle)))
	return os.Getenv(key)
}

type CheckoutInput struct {
	Plan  subscription.PlanType `json:"plan" validate:"required"`
	Cycle model.BillingCycle    `json:"cycle"`
}

// CreateCheckoutSession ücretli plana geçiş için Stripe Checkout başlatır
func CreateCheckoutSession(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Plan == subscription.FreePlan || input.Plan == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot checkout the free plan",
		})
	}
	if _, exists := subscription.Plans[input.Plan]; !exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown plan",
		})
	}

	cycle := input.Cycle
	if cycle == "" {
		cycle = model.BillingMonthly
	}

	priceID := stripePriceID(input.Plan, cycle)
	if priceID == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan is not available for checkout",
		})
	}

	var sub model.Subscription
	if err := database.GetDB().Where("user_id = ?", account.ID).First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No subscription found",
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(account.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(appConfig.App.FrontendURL + "/subscription/success"),
		CancelURL:  stripe.String(appConfig.App.FrontendURL + "/subscription/cancelled"),
	}
	params.AddMetadata("subscription_id", fmt.Sprint(sub.ID))
	params.AddMetadata("plan", string(input.Plan))
	params.AddMetadata("cycle", string(cycle))

	checkoutSession, err := session.New(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"url": checkoutSession.URL,
	})
}

type CancelInput struct {
	Reason string `json:"reason"`
}

// CancelSubscription aboneliği cancelled'a çeker; cancelled statüsü
// geri alınmaz
func CancelSubscription(c *fiber.Ctx) error {
	account := middleware.AccountFromCtx(c)

	input := new(CancelInput)
	c.BodyParser(input)

	var sub model.Subscription
	if err := database.GetDB().Where("user_id = ?", account.ID).First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No subscription found",
		})
	}

	if !sub.IsUsable() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subscription is already inactive",
		})
	}

	now := time.Now()
	err := database.GetDB().Model(&sub).Updates(map[string]interface{}{
		"status":              model.StatusCancelled,
		"auto_renew":          false,
		"cancellation_date":   now,
		"cancellation_reason": input.Reason,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not cancel subscription",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subscription cancelled successfully",
	})
}

// HandleStripeWebhook Stripe faturalama olaylarını abonelik durumuna işler.
// trial -> active geçişi yalnızca burada, ödeme tamamlanınca olur.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), stripeWebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		var sessionData struct {
			ID       string            `json:"id"`
			Customer string            `json:"customer"`
			Sub      string            `json:"subscription"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sessionData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}

		var sub model.Subscription
		if err := database.GetDB().First(&sub, sessionData.Metadata["subscription_id"]).Error; err != nil {
			log.Printf("Webhook: subscription %s not found", sessionData.Metadata["subscription_id"])
			return c.SendStatus(fiber.StatusOK)
		}

		plan := subscription.PlanType(sessionData.Metadata["plan"])
		details := subscription.GetPlanDetails(plan)

		now := time.Now()
		nextBilling := now.AddDate(0, 1, 0)
		if model.BillingCycle(sessionData.Metadata["cycle"]) == model.BillingYearly {
			nextBilling = now.AddDate(1, 0, 0)
		}

		err = database.GetDB().Model(&sub).Updates(map[string]interface{}{
			"status":                 model.StatusActive,
			"plan":                   plan,
			"features":               datatypes.NewJSONType(details.Features),
			"billing_cycle":          sessionData.Metadata["cycle"],
			"start_date":             now,
			"next_billing_date":      nextBilling,
			"stripe_customer_id":     sessionData.Customer,
			"stripe_subscription_id": sessionData.Sub,
		}).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not activate subscription",
			})
		}

		// Mağazanın depolama limiti yeni planla hizalanır
		database.GetDB().Model(&model.Store{}).Where("id = ?", sub.StoreID).
			Update("storage_limit", details.Features.StorageLimit)

		log.Printf("Subscription %d activated on plan %s", sub.ID, plan)

	case "invoice.paid":
		var invoiceData struct {
			ID           string  `json:"id"`
			Subscription string  `json:"subscription"`
			AmountPaid   float64 `json:"amount_paid"`
			Currency     string  `json:"currency"`
			Number       string  `json:"number"`
		}
		if err := json.Unmarshal(event.Data.Raw, &invoiceData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}

		var sub model.Subscription
		err := database.GetDB().
			Where("stripe_subscription_id = ?", invoiceData.Subscription).
			First(&sub).Error
		if err != nil {
			return c.SendStatus(fiber.StatusOK)
		}

		sub.AppendPayment(model.Payment{
			Amount:        invoiceData.AmountPaid / 100,
			Currency:      strings.ToUpper(invoiceData.Currency),
			Date:          time.Now(),
			Status:        "paid",
			TransactionID: invoiceData.ID,
			InvoiceNumber: invoiceData.Number,
		})
		if err := database.GetDB().Save(&sub).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not record payment",
			})
		}

	case "customer.subscription.deleted":
		var subData struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &subData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}

		now := time.Now()
		err := database.GetDB().Model(&model.Subscription{}).
			Where("stripe_subscription_id = ?", subData.ID).
			Updates(map[string]interface{}{
				"status":            model.StatusCancelled,
				"auto_renew":        false,
				"cancellation_date": now,
			}).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription status",
			})
		}

		log.Printf("Stripe subscription %s cancelled", subData.ID)
	}

	return c.SendStatus(fiber.StatusOK)
}
