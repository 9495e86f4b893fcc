package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tokodigital_backend/pkg/subscription"
)

type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

type BillingCycle string

const (
	BillingMonthly  BillingCycle = "monthly"
	BillingYearly   BillingCycle = "yearly"
	BillingLifetime BillingCycle = "lifetime"
)

// TrialPeriod yeni hesapların deneme süresi
const TrialPeriod = 14 * 24 * time.Hour

type Payment struct {
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	InvoiceNumber string    `json:"invoice_number"`
}

type Subscription struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"not null;index"`
	StoreID uint `json:"store_id" gorm:"not null;index"`

	Plan     subscription.PlanType                         `json:"plan" gorm:"default:'free'"`
	Status   SubscriptionStatus                            `json:"status" gorm:"default:'trial';index"`
	Features datatypes.JSONType[subscription.PlanFeatures] `json:"features"`

	BillingCycle   BillingCycle `json:"billing_cycle" gorm:"default:'monthly'"`
	TrialStartDate time.Time    `json:"trial_start_date"`
	TrialEndDate   time.Time    `json:"trial_end_date"`

	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	NextBillingDate *time.Time `json:"next_billing_date"`
	LastPaymentDate *time.Time `json:"last_payment_date"`

	PaymentMethod  string                       `json:"payment_method"`
	PaymentHistory datatypes.JSONSlice[Payment] `json:"payment_history"`

	StripeCustomerID     string `json:"stripe_customer_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`

	AutoRenew          bool       `json:"auto_renew" gorm:"default:true"`
	CancellationDate   *time.Time `json:"cancellation_date"`
	CancellationReason string     `json:"cancellation_reason"`
}

// NewTrialSubscription kayıt sırasında oluşturulan free/trial aboneliği döner.
// Feature değerleri plan kataloğundan burada kopyalanır, DB default'u yoktur.
func NewTrialSubscription(userID, storeID uint, now time.Time) Subscription {
	details := subscription.GetPlanDetails(subscription.FreePlan)

	return Subscription{
		UserID:         userID,
		StoreID:        storeID,
		Plan:           subscription.FreePlan,
		Status:         StatusTrial,
		Features:       datatypes.NewJSONType(details.Features),
		BillingCycle:   BillingMonthly,
		TrialStartDate: now,
		TrialEndDate:   now.Add(TrialPeriod),
		AutoRenew:      true,
	}
}

// IsTrialExpired sadece trial statüsünde ve trial bitişi kesin olarak
// geçilmişse true döner. Diğer statüler için her zaman false.
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	if s.Status != StatusTrial {
		return false
	}
	return now.After(s.TrialEndDate)
}

// CanAccessFeature aboneliğe kayıtlı feature değerine göre karar verir
func (s *Subscription) CanAccessFeature(feature subscription.Feature) bool {
	return s.Features.Data().CanAccess(feature)
}

// IsUsable expired/cancelled abonelikler bir daha aktifleşmez
func (s *Subscription) IsUsable() bool {
	return s.Status != StatusExpired && s.Status != StatusCancelled
}

// AppendPayment ödeme geçmişine kayıt ekler (append-only)
func (s *Subscription) AppendPayment(p Payment) {
	s.PaymentHistory = append(s.PaymentHistory, p)
	s.LastPaymentDate = &p.Date
}

// ExpireTrial süresi dolan trial aboneliğini koşullu update ile expired'a
// çeker. Status kolonu üzerinden compare-and-swap: yarışan isteklerden yalnızca
// birinin yazması etkili olur, diğeri RowsAffected=0 görür ve sonucu okur.
func ExpireTrial(db *gorm.DB, sub *Subscription) error {
	result := db.Model(&Subscription{}).
		Where("id = ? AND status = ?", sub.ID, StatusTrial).
		Update("status", StatusExpired)
	if result.Error != nil {
		return result.Error
	}

	sub.Status = StatusExpired
	return nil
}
