package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatPhoneNumber numarayı wa.me'nin beklediği uluslararası forma çevirir.
// Baştaki 0, 62 ülke koduyla değiştirilir.
func FormatPhoneNumber(phone string) string {
	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}

	number := cleaned.String()
	if strings.HasPrefix(number, "0") {
		number = "62" + number[1:]
	}
	if !strings.HasPrefix(number, "62") {
		number = "62" + number
	}

	return number
}

// GenerateLink wa.me deep-link'i üretir
func GenerateLink(phoneNumber, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", FormatPhoneNumber(phoneNumber), url.QueryEscape(text))
}

// FormatRupiah 1500000 -> "Rp 1.500.000"
func FormatRupiah(amount float64) string {
	return idPrinter.Sprintf("Rp %.0f", amount)
}

type OrderLine struct {
	Name     string
	Quantity int
	Price    float64
}

type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// GenerateOrderMessage WhatsApp üzerinden gönderilecek sipariş özetini üretir
func GenerateOrderMessage(storeName string, lines []OrderLine, total float64, customer CustomerInfo) string {
	var b strings.Builder

	b.WriteString("🛍️ *PESANAN BARU*\n")
	b.WriteString(fmt.Sprintf("Dari: %s\n\n", storeName))

	b.WriteString("📦 *Detail Pesanan:*\n")
	for _, line := range lines {
		b.WriteString(fmt.Sprintf("• %s\n", line.Name))
		b.WriteString(fmt.Sprintf("  Qty: %d x %s\n", line.Quantity, FormatRupiah(line.Price)))
		b.WriteString(fmt.Sprintf("  Subtotal: %s\n\n", FormatRupiah(line.Price*float64(line.Quantity))))
	}

	b.WriteString(fmt.Sprintf("💰 *Total: %s*\n\n", FormatRupiah(total)))

	if customer.Name != "" || customer.Phone != "" || customer.Address != "" {
		b.WriteString("👤 *Data Pembeli:*\n")
		if customer.Name != "" {
			b.WriteString(fmt.Sprintf("Nama: %s\n", customer.Name))
		}
		if customer.Phone != "" {
			b.WriteString(fmt.Sprintf("Telepon: %s\n", customer.Phone))
		}
		if customer.Address != "" {
			b.WriteString(fmt.Sprintf("Alamat: %s\n", customer.Address))
		}
	}

	if customer.Notes != "" {
		b.WriteString(fmt.Sprintf("\n📝 *Catatan:*\n%s\n", customer.Notes))
	}

	b.WriteString("\n✨ Terima kasih telah berbelanja!")

	return b.String()
}

// GenerateInquiryMessage tek ürün için soru mesajı üretir
func GenerateInquiryMessage(storeName, productName string, price float64, description string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Halo, saya tertarik dengan produk dari %s:\n\n", storeName))
	b.WriteString(fmt.Sprintf("📦 *%s*\n", productName))
	b.WriteString(fmt.Sprintf("💰 Harga: %s\n", FormatRupiah(price)))

	if description != "" {
		// Kırpma rune sınırında yapılır, multibyte karakter bölünmez
		if runes := []rune(description); len(runes) > 100 {
			b.WriteString(fmt.Sprintf("\n%s...\n", string(runes[:100])))
		} else {
			b.WriteString(fmt.Sprintf("\n%s\n", description))
		}
	}

	b.WriteString("\nApakah produk ini masih tersedia?")

	return b.String()
}

// GenerateDefaultMessage ürün belirtilmeyen sorular için varsayılan mesaj
func GenerateDefaultMessage(storeName string) string {
	return fmt.Sprintf("Halo, saya ingin bertanya tentang produk di %s", storeName)
}
