package view

// controlOptions lists the select values the wardrobe service classifies into.
var controlOptions = map[string][]string{
	"category": {"tops", "bottoms", "dresses", "outerwear", "shoes", "accessories"},
	"color":    {"black", "white", "gray", "red", "orange", "yellow", "green", "blue", "purple", "pink", "other"},
	"season":   {"spring", "summer", "fall", "winter"},
	"occasion": {"casual", "work", "formal", "athletic"},
}
