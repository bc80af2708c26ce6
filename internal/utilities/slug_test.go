package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Site Engineer", "site-engineer"},
		{"  Senior   Site  Engineer ", "senior-site-engineer"},
		{"C++ / Embedded Developer!", "c--embedded-developer"},
		{"Fleet Coordinator (Night Shift)", "fleet-coordinator-night-shift"},
		{"UPPER lower 123", "upper-lower-123"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		got := Slugify(tc.title)
		assert.Equal(t, tc.want, got)
		// Stable for a fixed title
		assert.Equal(t, got, Slugify(tc.title))
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, valid, "unexpected rune %q in slug %q", r, got)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("S3cret!pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "S3cret!pass", hashed)
	assert.True(t, VerifyPassword("S3cret!pass", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))
}
