package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/email"
)

func InitTrialExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		expireOverdueTrials()
		sendTrialWarnings()
	})

	if err != nil {
		log.Printf("Could not initialize trial expiry cron: %v", err)
		return
	}

	c.Start()
}

// expireOverdueTrials süresi geçmiş trial'ları toplu ve koşullu update ile
// expired'a çeker. Access guard aynı geçişi istek anında yapar; bu süpürme
// hiç istek atmayan hesapları yakalar.
func expireOverdueTrials() {
	result := database.GetDB().Model(&model.Subscription{}).
		Where("status = ? AND trial_end_date < ?", model.StatusTrial, time.Now()).
		Update("status", model.StatusExpired)

	if result.Error != nil {
		log.Printf("Error expiring overdue trials: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Expired %d overdue trial subscriptions", result.RowsAffected)
		notifyExpiredTrials()
	}
}

func notifyExpiredTrials() {
	if email.GlobalEmailService == nil {
		return
	}

	var subs []model.Subscription
	cutoff := time.Now().Add(-24 * time.Hour)
	err := database.GetDB().
		Where("status = ? AND updated_at > ?", model.StatusExpired, cutoff).
		Find(&subs).Error
	if err != nil {
		log.Printf("Error fetching expired trials: %v", err)
		return
	}

	for _, sub := range subs {
		var user model.User
		if err := database.GetDB().First(&user, sub.UserID).Error; err != nil {
			continue
		}
		var store model.Store
		if err := database.GetDB().First(&store, sub.StoreID).Error; err != nil {
			continue
		}

		err := email.GlobalEmailService.SendTrialExpiredEmail(user.Email, email.TrialExpiredData{
			Name:      user.Name,
			StoreName: store.Name,
		})
		if err != nil {
			log.Printf("Error sending trial expired email to %s: %v", user.Email, err)
		}
	}
}

// sendTrialWarnings bitişe 7 ve 3 gün kala uyarı maili gönderir
func sendTrialWarnings() {
	if email.GlobalEmailService == nil {
		return
	}

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		var subs []model.Subscription
		targetDate := time.Now().AddDate(0, 0, days).Format("2006-01-02")

		err := database.GetDB().
			Where("status = ? AND DATE(trial_end_date) = ?", model.StatusTrial, targetDate).
			Find(&subs).Error
		if err != nil {
			log.Printf("Error fetching expiring trials: %v", err)
			continue
		}

		log.Printf("Found %d trials expiring in %d days", len(subs), days)

		for _, sub := range subs {
			var user model.User
			if err := database.GetDB().First(&user, sub.UserID).Error; err != nil {
				continue
			}
			var store model.Store
			if err := database.GetDB().First(&store, sub.StoreID).Error; err != nil {
				continue
			}

			err := email.GlobalEmailService.SendTrialWarningEmail(user.Email, email.TrialWarningData{
				Name:         user.Name,
				StoreName:    store.Name,
				DaysLeft:     days,
				TrialEndDate: sub.TrialEndDate,
			})
			if err != nil {
				log.Printf("Error sending trial warning to %s: %v", user.Email, err)
			}
		}
	}
}
