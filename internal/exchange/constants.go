package exchange

// Version is the only envelope version this build reads or writes.
const Version = "1.0"

// Envelope types
const (
	TypeRecipe   = "recipe"
	TypeCookbook = "cookbook"
)

// Share code prefixes
const (
	PrefixRecipe   = "BUNCHES_RECIPE:"
	PrefixCookbook = "BUNCHES_COOKBOOK:"
)

// shareAlphabet is the rearranged base64 symbol set used for share codes:
// digits lead, then lowercase, uppercase, and the url-safe pair. Padding
// stays '='. Changing the order breaks every code in the wild.
const shareAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"
