package model

type CookingState string

const (
	CookingRaw     CookingState = "raw"
	CookingCooking CookingState = "cooking"
	CookingCooked  CookingState = "cooked"
)

// GenerationConfig describes the product photo to synthesize.
type GenerationConfig struct {
	Cut          BeefCut       `json:"cut"`
	Marbling     MarblingLevel `json:"marbling"`
	Garnish      bool          `json:"garnish"`
	CookingState CookingState  `json:"cooking_state"`
	IsCeremonial bool          `json:"is_ceremonial"`
}

// GenerationConfigFor returns the photo settings used for a catalog product.
func GenerationConfigFor(p Product) GenerationConfig {
	return GenerationConfig{
		Cut:          p.Cut,
		Marbling:     MarblingUltra,
		Garnish:      true,
		CookingState: CookingRaw,
		IsCeremonial: p.Category == CategoryCeremonial,
	}
}

// GeneratedImage is the latest synthesized photo for one product.
type GeneratedImage struct {
	ProductID string `json:"product_id"`
	URL       string `json:"url"`
}
