package upwork

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTMLStripsChrome(t *testing.T) {
	raw := `<html><head><style>.x{color:red}</style></head><body>
		<nav>Home | Jobs</nav>
		<script>var tracking = true;</script>
		<div>Looking   for a <b>Go developer</b></div>
		<footer>© Upwork</footer>
	</body></html>`

	got := CleanHTML(raw)
	assert.Equal(t, "Looking for a Go developer", got)
}

func TestCleanHTMLCapsLength(t *testing.T) {
	raw := "<body><p>" + strings.Repeat("a", maxCleanedLen*2) + "</p></body>"
	got := CleanHTML(raw)
	assert.Len(t, got, maxCleanedLen)
}

func TestCleanHTMLPlainText(t *testing.T) {
	got := CleanHTML("just   plain\n\ttext")
	assert.Equal(t, "just plain text", got)
}
