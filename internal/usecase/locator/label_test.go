package locator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabel(t *testing.T) {
	html := `<a href="/c/abc"><span>Weekly   planning</span><button aria-haspopup="menu"></button></a>`
	assert.Equal(t, "Weekly planning", RowLabel(html))
}

func TestRowLabel_SkipsNonContent(t *testing.T) {
	html := `<a href="/c/abc"><script>evil()</script><input data-sweep-check><span>Title</span></a>`
	assert.Equal(t, "Title", RowLabel(html))
}

func TestRowLabel_Truncates(t *testing.T) {
	html := "<div>" + strings.Repeat("x", 200) + "</div>"
	assert.Len(t, RowLabel(html), maxLabelLen)
}

func TestRowLabel_Garbage(t *testing.T) {
	assert.Equal(t, "", RowLabel(""))
}
