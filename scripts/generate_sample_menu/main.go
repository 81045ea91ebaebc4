package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// sampleItem mirrors the catalog seed document shape.
type sampleItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Generates a sample menu seed file for local development and testing.
func main() {
	path := "menu_seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	items := []sampleItem{
		{Name: "Roast Duck Breast", Category: "salad", Price: 14.50, Description: "Roasted duck breast served with fresh greens"},
		{Name: "Tuna Niçoise", Category: "salad", Price: 28.50, Description: "Seared tuna, green beans, olives, and egg"},
		{Name: "Escalope de Veau", Category: "soup", Price: 12.50, Description: "Veal escalope in a light broth"},
		{Name: "Chicken and Walnut Salad", Category: "salad", Price: 10.00, Description: "Poached chicken with toasted walnuts"},
		{Name: "Fish Parmentier", Category: "pizza", Price: 12.50, Description: "Baked fish beneath a potato crust"},
		{Name: "Spicy Mushroom Pizza", Category: "pizza", Price: 11.00, Description: "Wood-fired base with chilli and mushrooms"},
		{Name: "Crème Brûlée", Category: "dessert", Price: 7.50, Description: "Classic vanilla custard with a caramel crust"},
		{Name: "Chocolate Tart", Category: "dessert", Price: 5.00, Description: "Dark chocolate ganache in shortcrust pastry"},
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}

	fmt.Printf("Wrote %d sample menu items to %s\n", len(items), path)
}
