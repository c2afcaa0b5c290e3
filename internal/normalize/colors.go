package normalize

// ColorDefault is the token used when a select entry has no color and the
// visual treatment for tokens we have no style for.
const ColorDefault = "default"

// colorStyles maps provider color tokens to the site's CSS class pairs
// (light / dark). Tokens missing here render with the default treatment
// rather than failing.
var colorStyles = map[string]string{
	"default": "bg-gray-100 text-gray-800 dark:bg-gray-700 dark:text-gray-200",
	"gray":    "bg-gray-100 text-gray-800 dark:bg-gray-700 dark:text-gray-200",
	"brown":   "bg-amber-100 text-amber-800 dark:bg-amber-900 dark:text-amber-200",
	"orange":  "bg-orange-100 text-orange-800 dark:bg-orange-900 dark:text-orange-200",
	"yellow":  "bg-yellow-100 text-yellow-800 dark:bg-yellow-900 dark:text-yellow-200",
	"green":   "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-200",
	"blue":    "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-200",
	"purple":  "bg-purple-100 text-purple-800 dark:bg-purple-900 dark:text-purple-200",
	"pink":    "bg-pink-100 text-pink-800 dark:bg-pink-900 dark:text-pink-200",
	"red":     "bg-red-100 text-red-800 dark:bg-red-900 dark:text-red-200",
}

// ColorStyle returns the CSS classes for a color token, falling back to
// the default style for tokens the palette does not know.
func ColorStyle(token string) string {
	if s, ok := colorStyles[token]; ok {
		return s
	}
	return colorStyles[ColorDefault]
}
