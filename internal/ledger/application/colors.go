package application

// accountColors is the palette cycled through when creating funds, cards, and
// savings goals without an explicit color.
var accountColors = []string{
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4", "#ffeaa7",
	"#dda0dd", "#fab1a0", "#74b9ff", "#fd79a8", "#fdcb6e",
	"#00b894", "#0984e3", "#6c5ce7", "#00cec9", "#e17055",
}

// nextColor picks the first palette color not already in use, wrapping around
// once the palette is exhausted.
func nextColor(used []string) string {
	inUse := make(map[string]bool, len(used))
	for _, color := range used {
		inUse[color] = true
	}
	for _, color := range accountColors {
		if !inUse[color] {
			return color
		}
	}
	return accountColors[len(used)%len(accountColors)]
}
