package subscription

type PlanType string
type Feature string

const (
	FreePlan         PlanType = "free"
	StarterPlan      PlanType = "starter"
	ProfessionalPlan PlanType = "professional"
	EnterprisePlan   PlanType = "enterprise"
)

const (
	ProductLimit          Feature = "productLimit"
	StorageLimit          Feature = "storageLimit"
	CustomDomain          Feature = "customDomain"
	AILandingPage         Feature = "aiLandingPage"
	AdvancedAnalytics     Feature = "advancedAnalytics"
	PrioritySupport       Feature = "prioritySupport"
	RemoveWatermark       Feature = "removeWatermark"
	MultipleStores        Feature = "multipleStores"
	TeamMembers           Feature = "teamMembers"
	APIAccess             Feature = "apiAccess"
	ExportData            Feature = "exportData"
	ChatSupport           Feature = "chatSupport"
	WhatsAppIntegration   Feature = "whatsappIntegration"
	EmailMarketing        Feature = "emailMarketing"
	AbandonedCartRecovery Feature = "abandonedCartRecovery"
)

// Unlimited limitli feature'lar için sınırsız anlamına gelir
const Unlimited = -1

type PlanFeatures struct {
	ProductLimit          int   `json:"productLimit"`
	StorageLimit          int64 `json:"storageLimit"`
	CustomDomain          bool  `json:"customDomain"`
	AILandingPage         bool  `json:"aiLandingPage"`
	AdvancedAnalytics     bool  `json:"advancedAnalytics"`
	PrioritySupport       bool  `json:"prioritySupport"`
	RemoveWatermark       bool  `json:"removeWatermark"`
	MultipleStores        int   `json:"multipleStores"`
	TeamMembers           int   `json:"teamMembers"`
	APIAccess             bool  `json:"apiAccess"`
	ExportData            bool  `json:"exportData"`
	ChatSupport           bool  `json:"chatSupport"`
	WhatsAppIntegration   bool  `json:"whatsappIntegration"`
	EmailMarketing        bool  `json:"emailMarketing"`
	AbandonedCartRecovery bool  `json:"abandonedCartRecovery"`
}

type PlanPricing struct {
	Monthly  float64 `json:"monthly"`
	Yearly   float64 `json:"yearly"`
	Currency string  `json:"currency"`
}

type PlanDetails struct {
	Name     string       `json:"name"`
	Price    PlanPricing  `json:"price"`
	Features PlanFeatures `json:"features"`
}

var Plans = map[PlanType]PlanDetails{
	FreePlan: {
		Name:  "Free",
		Price: PlanPricing{Monthly: 0, Yearly: 0, Currency: "IDR"},
		Features: PlanFeatures{
			ProductLimit:        10,
			StorageLimit:        100 * 1024 * 1024,
			MultipleStores:      1,
			TeamMembers:         1,
			ExportData:          true,
			WhatsAppIntegration: true,
		},
	},
	StarterPlan: {
		Name:  "Starter",
		Price: PlanPricing{Monthly: 99000, Yearly: 990000, Currency: "IDR"},
		Features: PlanFeatures{
			ProductLimit:        100,
			StorageLimit:        1024 * 1024 * 1024,
			AdvancedAnalytics:   true,
			RemoveWatermark:     true,
			MultipleStores:      1,
			TeamMembers:         3,
			ExportData:          true,
			ChatSupport:         true,
			WhatsAppIntegration: true,
			EmailMarketing:      true,
		},
	},
	ProfessionalPlan: {
		Name:  "Professional",
		Price: PlanPricing{Monthly: 299000, Yearly: 2990000, Currency: "IDR"},
		Features: PlanFeatures{
			ProductLimit:          1000,
			StorageLimit:          5 * 1024 * 1024 * 1024,
			CustomDomain:          true,
			AdvancedAnalytics:     true,
			PrioritySupport:       true,
			RemoveWatermark:       true,
			MultipleStores:        3,
			TeamMembers:           10,
			APIAccess:             true,
			ExportData:            true,
			ChatSupport:           true,
			WhatsAppIntegration:   true,
			EmailMarketing:        true,
			AbandonedCartRecovery: true,
		},
	},
	EnterprisePlan: {
		Name:  "Enterprise",
		Price: PlanPricing{Monthly: 999000, Yearly: 9990000, Currency: "IDR"},
		Features: PlanFeatures{
			ProductLimit:          Unlimited,
			StorageLimit:          50 * 1024 * 1024 * 1024,
			CustomDomain:          true,
			AILandingPage:         true,
			AdvancedAnalytics:     true,
			PrioritySupport:       true,
			RemoveWatermark:       true,
			MultipleStores:        Unlimited,
			TeamMembers:           Unlimited,
			APIAccess:             true,
			ExportData:            true,
			ChatSupport:           true,
			WhatsAppIntegration:   true,
			EmailMarketing:        true,
			AbandonedCartRecovery: true,
		},
	},
}

// GetPlanDetails bilinmeyen plan isimleri için Free planını döner
func GetPlanDetails(plan PlanType) PlanDetails {
	details, exists := Plans[plan]
	if !exists {
		return Plans[FreePlan]
	}
	return details
}

// Value named feature'ın ham değerini döner (bool veya int)
func (f PlanFeatures) Value(feature Feature) (interface{}, bool) {
	switch feature {
	case ProductLimit:
		return f.ProductLimit, true
	case StorageLimit:
		return f.StorageLimit, true
	case CustomDomain:
		return f.CustomDomain, true
	case AILandingPage:
		return f.AILandingPage, true
	case AdvancedAnalytics:
		return f.AdvancedAnalytics, true
	case PrioritySupport:
		return f.PrioritySupport, true
	case RemoveWatermark:
		return f.RemoveWatermark, true
	case MultipleStores:
		return f.MultipleStores, true
	case TeamMembers:
		return f.TeamMembers, true
	case APIAccess:
		return f.APIAccess, true
	case ExportData:
		return f.ExportData, true
	case ChatSupport:
		return f.ChatSupport, true
	case WhatsAppIntegration:
		return f.WhatsAppIntegration, true
	case EmailMarketing:
		return f.EmailMarketing, true
	case AbandonedCartRecovery:
		return f.AbandonedCartRecovery, true
	}
	return nil, false
}

// CanAccess boolean feature'larda true, limitli feature'larda pozitif
// veya Unlimited (-1) değerler için true döner. 0 = kapalı.
func (f PlanFeatures) CanAccess(feature Feature) bool {
	value, exists := f.Value(feature)
	if !exists {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v == Unlimited || v > 0
	case int64:
		return v == Unlimited || v > 0
	}
	return false
}

// WithinLimit mevcut kullanım limitin altında mı kontrol eder
func WithinLimit(limit int, current int64) bool {
	if limit == Unlimited {
		return true
	}
	return current < int64(limit)
}
