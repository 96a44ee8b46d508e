package captions

import (
	"fmt"
	"strings"
)

// EscapeDrawtext makes text safe inside a single-quoted drawtext text=''
// value. Apostrophes are replaced with a typographic right quote instead of
// escaped, since an escaped apostrophe would still terminate the quoted
// string once ffmpeg re-parses the filter graph.
func EscapeDrawtext(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "'", "’")
	text = strings.ReplaceAll(text, ":", `\:`)
	text = strings.ReplaceAll(text, "[", `\[`)
	text = strings.ReplaceAll(text, "]", `\]`)
	text = strings.ReplaceAll(text, "%", `\%`)
	text = strings.ReplaceAll(text, ";", `\;`)
	return text
}

// BuildCaptionFilter renders each timed fragment into a drawtext directive
// and joins them into one filter chain. Each directive is keyed by its own
// between(t,...) window, so ffmpeg shows exactly one caption at a time.
// Zero fragments yield an empty chain (crop-only render).
func BuildCaptionFilter(timed []TimedFragment, style CaptionStyle) string {
	directives := make([]string, 0, len(timed))
	for _, tf := range timed {
		var b strings.Builder
		fmt.Fprintf(&b, "drawtext=text='%s':fontsize=%d:fontcolor=%s:borderw=%d:bordercolor=%s:x=(w-text_w)/2:y=%s",
			EscapeDrawtext(tf.Text),
			style.FontSize, style.FontColor,
			style.BorderWidth, style.BorderColor,
			style.Y)
		if style.Shadow != nil {
			fmt.Fprintf(&b, ":shadowcolor=%s:shadowx=%d:shadowy=%d",
				style.Shadow.Color, style.Shadow.OffsetX, style.Shadow.OffsetY)
		}
		fmt.Fprintf(&b, ":enable='between(t,%.3f,%.3f)'", tf.Start, tf.End)
		directives = append(directives, b.String())
	}
	return strings.Join(directives, ",")
}
