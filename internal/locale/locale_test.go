package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		tag  string
		lang string
		dir  string
	}{
		{"he-IL", "he", "rtl"},
		{"he", "he", "rtl"},
		{"ar-EG", "ar", "rtl"},
		{"en-US", "en", "ltr"},
		{"fr", "fr", "ltr"},
		{"not a tag!", "he", "rtl"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			l := Parse(tt.tag)
			assert.Equal(t, tt.lang, l.Lang())
			assert.Equal(t, tt.dir, l.Dir())
		})
	}
}

func TestPrice(t *testing.T) {
	l := Parse("he-IL")
	assert.Equal(t, "₪48", l.Price(48))
	assert.Equal(t, "₪0", l.Price(0))
	assert.Equal(t, "₪1,250", l.Price(1250))
	assert.Equal(t, "1,000", l.Number(1000))
}
