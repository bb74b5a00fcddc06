package booking

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterhub/backend/internal/pricing"
)

func TestMessage(t *testing.T) {
	q, err := pricing.ForDays(1000, 3)
	require.NoError(t, err)

	pickup := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)

	msg := Message("Canon EOS R5", "cameras", q, pickup, ret, "Asha", "9876543210")

	assert.True(t, strings.HasPrefix(msg, "*Booking Details*\n"))
	assert.Contains(t, msg, "Product: Canon EOS R5 (cameras)\n")
	assert.Contains(t, msg, "Pickup Date: 2026-08-10\n")
	assert.Contains(t, msg, "Return Date: 2026-08-13\n")
	assert.Contains(t, msg, "Total Price: ₹2550.00\n")
	assert.Contains(t, msg, "*Customer Details*\nName: Asha\nPhone: 9876543210\n")
	assert.Contains(t, msg, "Payment integration is coming soon")
}

func TestLink(t *testing.T) {
	link := Link("919940423791", "*Booking Details*\nProduct: Lens")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919940423791?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*Booking Details*\nProduct: Lens", u.Query().Get("text"))
}
