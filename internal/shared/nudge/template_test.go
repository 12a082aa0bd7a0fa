package nudge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKnownKinds(t *testing.T) {
	data := Data{Name: "Alice", DashboardURL: "https://dash.example.com"}

	for _, kind := range []string{"incomplete_profile", "missing_payout", "dormant_account"} {
		subject, body, err := Render(kind, data)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, subject, kind)
		assert.Contains(t, body, "Hi Alice", kind)
		assert.Contains(t, body, "https://dash.example.com", kind)
	}
}

func TestRenderBlankNameFallsBack(t *testing.T) {
	_, body, err := Render("dormant_account", Data{Name: "  ", DashboardURL: "https://dash.example.com"})
	require.NoError(t, err)
	assert.Contains(t, body, "Hi there,")
}

func TestRenderEscapesName(t *testing.T) {
	_, body, err := Render("missing_payout", Data{Name: "<script>x</script>", DashboardURL: "https://dash.example.com"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownKind(t *testing.T) {
	_, _, err := Render("made_up", Data{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
