package chart

// Palette is the fixed series palette. Participants pick colors by their
// position in score order, wrapping around for long leaderboards.
var Palette = []string{
	"#3366cc", "#dc3912", "#ff9900", "#109618", "#990099", "#0099c6",
	"#dd4477", "#66aa00", "#b82e2e", "#316395", "#994499", "#22aa99",
	"#aaaa11", "#6633cc", "#e67300", "#8b0707", "#651067", "#329262",
	"#5574a6", "#3b3eac", "#b77322", "#16d620", "#b91383", "#f4359e",
	"#9c5935", "#a9c413", "#2a778d", "#668d1c", "#bea413", "#0c5922",
	"#743411",
}

const (
	backgroundColor = "#0f0f23"
	textColor       = "#cccccc"
)

func ColorAt(colors []string, i int) string {
	if len(colors) == 0 {
		colors = Palette
	}
	return colors[i%len(colors)]
}
