package styles

// Status glyphs used by doctor and printer output.
var (
	IconPass = "✔"
	IconWarn = "●"
	IconFail = "✘"
	IconInfo = "•"
)
