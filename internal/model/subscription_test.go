package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokodigital_backend/pkg/subscription"
)

func TestNewTrialSubscription(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sub := NewTrialSubscription(7, 3, now)

	assert.Equal(t, uint(7), sub.UserID)
	assert.Equal(t, uint(3), sub.StoreID)
	assert.Equal(t, subscription.FreePlan, sub.Plan)
	assert.Equal(t, StatusTrial, sub.Status)
	assert.Equal(t, now, sub.TrialStartDate)
	assert.Equal(t, now.Add(TrialPeriod), sub.TrialEndDate)
	assert.True(t, sub.AutoRenew)

	// Feature değerleri katalogdan kopyalanır
	assert.Equal(t, subscription.Plans[subscription.FreePlan].Features, sub.Features.Data())
}

func TestIsTrialExpired(t *testing.T) {
	end := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status SubscriptionStatus
		now    time.Time
		want   bool
	}{
		{
			name:   "before trial end",
			status: StatusTrial,
			now:    end.Add(-time.Hour),
			want:   false,
		},
		{
			name:   "exactly at trial end",
			status: StatusTrial,
			now:    end,
			want:   false,
		},
		{
			name:   "after trial end",
			status: StatusTrial,
			now:    end.Add(time.Nanosecond),
			want:   true,
		},
		{
			name:   "active subscription never trial-expires",
			status: StatusActive,
			now:    end.AddDate(1, 0, 0),
			want:   false,
		},
		{
			name:   "cancelled subscription never trial-expires",
			status: StatusCancelled,
			now:    end.AddDate(1, 0, 0),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{Status: tt.status, TrialEndDate: end}
			assert.Equal(t, tt.want, sub.IsTrialExpired(tt.now))
		})
	}
}

func TestIsUsable(t *testing.T) {
	assert.True(t, (&Subscription{Status: StatusTrial}).IsUsable())
	assert.True(t, (&Subscription{Status: StatusActive}).IsUsable())
	assert.False(t, (&Subscription{Status: StatusExpired}).IsUsable())
	assert.False(t, (&Subscription{Status: StatusCancelled}).IsUsable())
}

func TestCanAccessFeature(t *testing.T) {
	sub := NewTrialSubscription(1, 1, time.Now())

	// Free plan WhatsApp'ı açar, custom domain'i kapatır
	assert.True(t, sub.CanAccessFeature(subscription.WhatsAppIntegration))
	assert.False(t, sub.CanAccessFeature(subscription.CustomDomain))
	assert.True(t, sub.CanAccessFeature(subscription.ProductLimit))
}

func TestExpireTrialConcurrent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&Subscription{}))

	sub := NewTrialSubscription(1, 1, time.Now().Add(-TrialPeriod-time.Hour))
	require.NoError(t, db.Create(&sub).Error)

	// Aynı kaydı gören iki eşzamanlı istek: koşullu update sayesinde ikisi de
	// hatasız biter ve ikisi de expired'ı gözlemler
	first := sub
	second := sub

	var wg sync.WaitGroup
	for _, s := range []*Subscription{&first, &second} {
		wg.Add(1)
		go func(s *Subscription) {
			defer wg.Done()
			assert.NoError(t, ExpireTrial(db, s))
		}(s)
	}
	wg.Wait()

	assert.Equal(t, StatusExpired, first.Status)
	assert.Equal(t, StatusExpired, second.Status)

	var stored Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, StatusExpired, stored.Status)

	// Geçiş tüketildi: status=trial koşulu artık satır bulamaz
	res := db.Model(&Subscription{}).
		Where("id = ? AND status = ?", sub.ID, StatusTrial).
		Update("status", StatusExpired)
	require.NoError(t, res.Error)
	assert.Zero(t, res.RowsAffected)
}

func TestExpireTrialIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&Subscription{}))

	sub := NewTrialSubscription(1, 1, time.Now().Add(-TrialPeriod-time.Hour))
	require.NoError(t, db.Create(&sub).Error)

	require.NoError(t, ExpireTrial(db, &sub))
	require.NoError(t, ExpireTrial(db, &sub))

	var stored Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, StatusExpired, stored.Status)
}

func TestAppendPayment(t *testing.T) {
	sub := Subscription{}
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	sub.AppendPayment(Payment{Amount: 99000, Currency: "IDR", Date: date, Status: "paid"})
	sub.AppendPayment(Payment{Amount: 99000, Currency: "IDR", Date: date.AddDate(0, 1, 0), Status: "paid"})

	assert.Len(t, sub.PaymentHistory, 2)
	assert.Equal(t, date.AddDate(0, 1, 0), *sub.LastPaymentDate)
}
