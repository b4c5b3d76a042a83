package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "₹20", f.Format(20))
	assert.Equal(t, "₹151", f.Format(151))
	assert.Equal(t, "₹89,650", f.Format(89650))
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	f := NewFormatter("not a locale!")
	assert.Equal(t, "₹50", f.Format(50))
}

func TestFormatter_Sprintf(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "Add ₹1,000 more", f.Sprintf("Add ₹%d more", 1000))
}
