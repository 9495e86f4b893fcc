package model

import (
	"github.com/google/uuid"
	goslug "github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryElectronics     ProductCategory = "Electronics"
	CategoryFashion         ProductCategory = "Fashion"
	CategoryFoodBeverages   ProductCategory = "Food & Beverages"
	CategoryHealthBeauty    ProductCategory = "Health & Beauty"
	CategoryHomeLiving      ProductCategory = "Home & Living"
	CategoryBooksStationery ProductCategory = "Books & Stationery"
	CategorySportsOutdoors  ProductCategory = "Sports & Outdoors"
	CategoryToysGames       ProductCategory = "Toys & Games"
	CategoryAutomotive      ProductCategory = "Automotive"
	CategoryServices        ProductCategory = "Services"
	CategoryDigitalProducts ProductCategory = "Digital Products"
	CategoryOther           ProductCategory = "Other"
)

type ProductVisibility string

const (
	VisibilityVisible   ProductVisibility = "visible"
	VisibilityHidden    ProductVisibility = "hidden"
	VisibilityScheduled ProductVisibility = "scheduled"
)

type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
	Size      int64  `json:"size"`
}

type Product struct {
	gorm.Model
	StoreID uint `json:"store_id" gorm:"not null;index:idx_store_active"`

	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    ProductCategory `json:"category" gorm:"not null;index"`
	Slug        string          `json:"slug" gorm:"uniqueIndex:idx_store_product_slug"`

	Price        float64 `json:"price" gorm:"not null"`
	ComparePrice float64 `json:"compare_price"`
	Cost         float64 `json:"cost" gorm:"default:0"`

	// Price/Cost'tan BeforeSave'de türetilir, elle set edilmez
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`

	SKU            string `json:"sku"`
	Stock          int    `json:"stock" gorm:"default:0"`
	TrackInventory bool   `json:"track_inventory" gorm:"default:true"`
	LowStockAlert  int    `json:"low_stock_alert" gorm:"default:5"`

	Images datatypes.JSONSlice[ProductImage] `json:"images"`
	Tags   datatypes.JSONSlice[string]       `json:"tags"`

	Visibility ProductVisibility `json:"visibility" gorm:"default:'visible'"`
	Featured   bool              `json:"featured" gorm:"default:false"`
	IsActive   bool              `json:"is_active" gorm:"default:true;index:idx_store_active"`

	Views int64 `json:"views" gorm:"default:0"`
	Sold  int64 `json:"sold" gorm:"default:0"`

	// İlişkiler
	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// BeforeSave slug ve kâr alanlarını türetir. Mağaza içinde slug çakışırsa
// sonuna kısa bir rastgele ek gelir.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Profit = p.Price - p.Cost
	if p.Price > 0 {
		p.ProfitMargin = (p.Price - p.Cost) / p.Price * 100
	} else {
		p.ProfitMargin = 0
	}

	if p.Slug == "" && p.Name != "" {
		candidate := goslug.Make(p.Name)

		var count int64
		tx.Model(&Product{}).Where("store_id = ? AND slug = ? AND id <> ?", p.StoreID, candidate, p.ID).Count(&count)
		if count > 0 {
			candidate = candidate + "-" + uuid.NewString()[:8]
		}
		p.Slug = candidate
	}

	return nil
}

// IsInStock stok takibi kapalıysa her zaman true döner
func (p *Product) IsInStock() bool {
	if !p.TrackInventory {
		return true
	}
	return p.Stock > 0
}

// ReduceStock yeterli stok yoksa false döner, satış sayacını günceller
func (p *Product) ReduceStock(quantity int) bool {
	if !p.TrackInventory {
		p.Sold += int64(quantity)
		return true
	}

	if p.Stock < quantity {
		return false
	}

	p.Stock -= quantity
	p.Sold += int64(quantity)
	return true
}

// PrimaryImage kapak görseli, yoksa ilk görseli döner
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
