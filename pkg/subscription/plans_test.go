package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlanDetails(t *testing.T) {
	free := GetPlanDetails(FreePlan)
	assert.Equal(t, "Free", free.Name)
	assert.Equal(t, 10, free.Features.ProductLimit)

	enterprise := GetPlanDetails(EnterprisePlan)
	assert.Equal(t, Unlimited, enterprise.Features.ProductLimit)

	// Bilinmeyen plan Free'ye düşer
	unknown := GetPlanDetails(PlanType("platinum"))
	assert.Equal(t, Plans[FreePlan], unknown)
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		features PlanFeatures
		feature  Feature
		want     bool
	}{
		{
			name:     "bool feature enabled",
			features: PlanFeatures{CustomDomain: true},
			feature:  CustomDomain,
			want:     true,
		},
		{
			name:     "bool feature disabled",
			features: PlanFeatures{},
			feature:  CustomDomain,
			want:     false,
		},
		{
			name:     "positive limit",
			features: PlanFeatures{ProductLimit: 10},
			feature:  ProductLimit,
			want:     true,
		},
		{
			name:     "zero limit means disabled",
			features: PlanFeatures{ProductLimit: 0},
			feature:  ProductLimit,
			want:     false,
		},
		{
			name:     "unlimited sentinel",
			features: PlanFeatures{ProductLimit: Unlimited},
			feature:  ProductLimit,
			want:     true,
		},
		{
			name:     "unlimited team members",
			features: PlanFeatures{TeamMembers: Unlimited},
			feature:  TeamMembers,
			want:     true,
		},
		{
			name:     "unknown feature",
			features: Plans[EnterprisePlan].Features,
			feature:  Feature("teleportation"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.features.CanAccess(tt.feature))
		})
	}
}

func TestValueUnknownFeature(t *testing.T) {
	_, exists := Plans[FreePlan].Features.Value(Feature("nope"))
	assert.False(t, exists)
}

func TestWithinLimit(t *testing.T) {
	assert.True(t, WithinLimit(Unlimited, 1_000_000))
	assert.True(t, WithinLimit(10, 9))
	assert.False(t, WithinLimit(10, 10))
	assert.False(t, WithinLimit(0, 0))
}

func TestPlanCatalogShape(t *testing.T) {
	// Her planın en az WhatsApp entegrasyonu açık olmalı
	for plan, details := range Plans {
		assert.True(t, details.Features.WhatsAppIntegration, "plan %s", plan)
		assert.NotEmpty(t, details.Name)
		assert.Equal(t, "IDR", details.Price.Currency)
	}
}
