package ingredient

// Ingredient is a purchasable food item with its canonical unit. All recipe
// lines and stock entries referencing an ingredient are assumed to use this
// unit; no conversion layer exists.
type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}
