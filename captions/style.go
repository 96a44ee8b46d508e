package captions

// Shadow adds a drop shadow behind the caption text.
type Shadow struct {
	Color   string
	OffsetX int
	OffsetY int
}

// CaptionStyle holds the fixed drawtext attributes for one caption look.
// X is always centered; Y is an ffmpeg expression so styles can anchor to
// the frame height.
type CaptionStyle struct {
	FontSize    int
	FontColor   string
	BorderWidth int
	BorderColor string
	Y           string
	Shadow      *Shadow
}

// StyleBold is the large centered white-on-black look used for story
// narration shorts.
var StyleBold = CaptionStyle{
	FontSize:    64,
	FontColor:   "white",
	BorderWidth: 4,
	BorderColor: "black",
	Y:           "(h-text_h)/2",
	Shadow:      &Shadow{Color: "black", OffsetX: 2, OffsetY: 2},
}

// StyleCompact is the smaller yellow-on-black lower-third look.
var StyleCompact = CaptionStyle{
	FontSize:    48,
	FontColor:   "yellow",
	BorderWidth: 3,
	BorderColor: "black",
	Y:           "h-text_h-h/5",
}

// StyleByName maps a config value to a style, defaulting to the bold look.
func StyleByName(name string) CaptionStyle {
	switch name {
	case "compact":
		return StyleCompact
	case "bold", "":
		return StyleBold
	default:
		return StyleBold
	}
}
