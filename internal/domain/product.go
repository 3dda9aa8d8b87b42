package domain

// Product is an immutable catalog record. The cart only ever copies it,
// never mutates it.
type Product struct {
	ID          int64   `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Brand       string  `json:"brand" bson:"brand"`
	Category    string  `json:"category" bson:"category"`
	Price       float64 `json:"price" bson:"price"`
	Image       string  `json:"image" bson:"image"`
	Specs       string  `json:"specs" bson:"specs"`
	Description string  `json:"description" bson:"description"`
}
