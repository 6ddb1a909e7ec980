package model

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ProductCategory string

const (
	CategoryAll        ProductCategory = "all"
	CategoryGrill      ProductCategory = "grill"
	CategoryRaw        ProductCategory = "raw"
	CategoryCeremonial ProductCategory = "ceremonial"
)

var categoryLabels = map[ProductCategory]string{
	CategoryAll:        "전체보기",
	CategoryGrill:      "구이용",
	CategoryRaw:        "생고기/육회",
	CategoryCeremonial: "예단/선물세트",
}

// Categories returns every category in display order.
func Categories() []ProductCategory {
	return []ProductCategory{CategoryAll, CategoryGrill, CategoryRaw, CategoryCeremonial}
}

func (c ProductCategory) Label() string {
	return categoryLabels[c]
}

func (c ProductCategory) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// BeefCut is the cut type shown to customers and fed to image prompts.
type BeefCut string

const (
	CutMungtigi       BeefCut = "Mungtigi (Signature Raw Lumps)"
	CutBrisketSashimi BeefCut = "Brisket Sashimi (Chadol Sashimi)"
	CutYukhoe         BeefCut = "Yukhoe (Seasoned Raw Beef)"
	CutYukSashimi     BeefCut = "Yuk-Sashimi (Premium Beef Sashimi)"
	CutGiftSet        BeefCut = "Premium Gift Set (1++ Gift Box)"
	CutPlatter        BeefCut = "Assorted Grilled Platter (Modem-Gui)"
	CutSirloin        BeefCut = "Premium Sirloin (Deungsim)"
	CutSalchisal      BeefCut = "Special Salchi-sal (Thin Flank)"
)

var beefCutCodes = map[string]BeefCut{
	"MUNGTIGI":        CutMungtigi,
	"BRISKET_SASHIMI": CutBrisketSashimi,
	"YUKHOE":          CutYukhoe,
	"YUK_SASHIMI":     CutYukSashimi,
	"GIFT_SET":        CutGiftSet,
	"PLATTER":         CutPlatter,
	"SIRLOIN":         CutSirloin,
	"SALCHISAL":       CutSalchisal,
}

// ParseBeefCut accepts either a cut code (MUNGTIGI) or the full cut name.
func ParseBeefCut(s string) (BeefCut, bool) {
	s = strings.TrimSpace(s)
	if cut, ok := beefCutCodes[strings.ToUpper(s)]; ok {
		return cut, true
	}
	for _, cut := range beefCutCodes {
		if string(cut) == s {
			return cut, true
		}
	}
	return "", false
}

// Code returns the short code of a known cut, or an empty string.
func (b BeefCut) Code() string {
	for code, cut := range beefCutCodes {
		if cut == b {
			return code
		}
	}
	return ""
}

type MarblingLevel string

const (
	MarblingStandard MarblingLevel = "Standard (1 Grade)"
	MarblingPremium  MarblingLevel = "Premium (1+ Grade)"
	MarblingUltra    MarblingLevel = "Ultra (1++ BMS No.9)"
)

// Product is a catalog entry. Price keeps the display string the catalog
// was authored with; use PriceValue for arithmetic.
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       string          `gorm:"type:varchar(32);not null" json:"price"`
	Cut         BeefCut         `gorm:"type:varchar(100)" json:"cut_type"`
	Category    ProductCategory `gorm:"type:varchar(20);index" json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	SortOrder   int             `gorm:"default:0" json:"-"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) PriceValue() int64 {
	return ParsePrice(p.Price)
}

// ParsePrice keeps only the digits of a display price. A price without
// digits, or one too large for int64, is worth 0.
func ParsePrice(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders an amount the way the storefront displays prices (₩125,000).
func FormatWon(amount int64) string {
	return "₩" + wonPrinter.Sprintf("%d", amount)
}
