package store

import (
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
	"github.com/shopspring/decimal"
)

// SeedBaseID is where the shared id counter starts, above every seeded id.
const SeedBaseID = 100

// Seed builds the fixed fixture: four accounts, six peppers, no orders.
func Seed(now time.Time) *State {
	accounts := []models.Account{
		{ID: "1", Name: "Chili Lover", Email: "chili.lover@example.com", Password: "pepper123", CreatedAt: now},
		{ID: "2", Name: "Spice Explorer", Email: "spice.explorer@example.com", Password: "pepper123", CreatedAt: now},
		{ID: "3", Name: "Heat Seeker", Email: "heat.seeker@example.com", Password: "pepper123", CreatedAt: now},
		{ID: "4", Name: "admin", Email: "admin@spicy.local", Password: "spicelord", CreatedAt: now},
	}

	products := []models.Product{
		seedProduct("10", "Habanero", 8, "4.50", 25, "/peppers/habanero.jpg",
			"Fruity heat with a citrus edge.",
			"The Habanero enters like a polite guest, shakes your hand, and then steals the spotlight. First you get tropical fruit, then suddenly your forehead starts negotiating a peace treaty with your taste buds. Great for salsa, dangerous for ego."),
		seedProduct("11", "Ghost Pepper", 10, "6.50", 15, "/peppers/ghost.jpg",
			"Smoky and intense. Legendary heat.",
			`Ghost Pepper does not shout; it whispers, waits, and then launches a full dramatic monologue on your tongue. Smoky, bold, and absolutely not a "just a little bit" pepper. Respect it like a boss level in a game you forgot to save.`),
		seedProduct("12", "Jalapeno", 5, "3.00", 40, "/peppers/jalapeno.jpg",
			"Friendly all-rounder with fresh kick.",
			"Jalapeno is your reliable teammate: always ready, never dramatic, and somehow still cool under pressure. Slice it on nachos, toss it in burgers, and pretend you are a chili pro while it quietly carries the whole flavor team."),
		seedProduct("13", "Serrano", 6, "3.50", 30, "/peppers/serrano.jpg",
			"Bright heat with a clean finish.",
			"Serrano is Jalapeno's athletic cousin: slimmer, faster, and just a little extra. Crisp bite, lively heat, and enough attitude to wake up any taco night. If flavor had a sprint race, Serrano would already be at the finish line."),
		seedProduct("14", "Cayenne", 7, "4.00", 20, "/peppers/cayenne.jpg",
			"Classic heat for sauces and rubs.",
			`Cayenne is the veteran chef in pepper form. It has seen every recipe, judged every marinade, and still says, "Needs more spice." Perfect when you want the dish to stand up straight and speak with confidence.`),
		seedProduct("15", "Scotch Bonnet", 9, "5.00", 18, "/peppers/scotch-bonnet.jpg",
			"Sweet tropical taste with serious kick.",
			"Scotch Bonnet tastes like a sunny holiday and then reminds you that the sun can burn. Sweet, fragrant, and fiery enough to make your dinner table go silent for exactly three seconds before everyone asks for more."),
	}

	return &State{
		NextID:   SeedBaseID,
		Accounts: accounts,
		Products: products,
		Orders:   []models.Order{},
	}
}

func seedProduct(id, name string, heat int, price string, stock int, image, short, long string) models.Product {
	return models.Product{
		ID:               id,
		Name:             name,
		Heat:             heat,
		Price:            decimal.RequireFromString(price),
		Stock:            stock,
		ImageURL:         image,
		ShortDescription: short,
		LongDescription:  long,
		Description:      short,
	}
}
