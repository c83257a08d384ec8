package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Status icons shown next to review verdicts and errors.
var (
	IconCheck   = "" // nf-fa-check_circle
	IconAlert   = "" // nf-fa-exclamation_circle
	IconWarning = "" // nf-fa-warning
	IconCode    = "" // nf-fa-code
	IconBug     = "" // nf-fa-bug
)
