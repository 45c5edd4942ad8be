package products

import "fmt"

// DefaultImageURL is used when a product is saved without an image.
const DefaultImageURL = "/peppers/pepper-generic.jpg"

func DefaultShortDescription(name string) string {
	return fmt.Sprintf("A bold %s pepper with a clean kick.", name)
}

func DefaultLongDescription(name, short string) string {
	return fmt.Sprintf("%s starts with %q and ends with happy chaos in the kitchen. "+
		"A little drama, a lot of flavor, and a very real chance someone at the table asks for water while smiling bravely.",
		name, short)
}
