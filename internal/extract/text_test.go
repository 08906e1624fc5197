package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainText_RemovesNoise(t *testing.T) {
	html := `<html><body>
	  <nav>Home | Discover</nav>
	  <main><p>Fintech Founders Night</p><p>Doors at 6:30pm.</p></main>
	  <footer>© lu.ma</footer>
	  <script>track();</script>
	</body></html>`

	text, err := MainText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Fintech Founders Night")
	assert.Contains(t, text, "Doors at 6:30pm.")
	assert.NotContains(t, text, "Home | Discover")
	assert.NotContains(t, text, "track()")
}

func TestMainText_BodyFallback(t *testing.T) {
	html := `<html><body><div><p>Just a plain page.</p></div></body></html>`

	text, err := MainText(html)
	require.NoError(t, err)
	assert.Equal(t, "Just a plain page.", text)
}

func TestMainText_CollapsesBlankLines(t *testing.T) {
	html := "<html><body><main><p>one</p>\n\n\n<p>two</p></main></body></html>"

	text, err := MainText(html)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", text)
}
