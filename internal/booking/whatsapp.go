// Package booking builds the WhatsApp handoff that finalizes a rental
// request. There is no payment flow: the storefront opens a wa.me deep link
// with the booking summary and the rest happens over chat.
package booking

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shutterhub/backend/internal/pricing"
)

const dateLayout = "2006-01-02"

// Message renders the booking summary text sent over WhatsApp. Totals use
// the precise (two-decimal) display policy, matching the booking form.
func Message(productName, productCategory string, q pricing.Quote, pickup, ret time.Time, customerName, customerPhone string) string {
	total := strconv.FormatFloat(q.PreciseTotal(), 'f', 2, 64)

	return "*Booking Details*\n" +
		fmt.Sprintf("Product: %s (%s)\n", productName, productCategory) +
		fmt.Sprintf("Pickup Date: %s\n", pickup.Format(dateLayout)) +
		fmt.Sprintf("Return Date: %s\n", ret.Format(dateLayout)) +
		fmt.Sprintf("Total Price: ₹%s\n\n", total) +
		"*Customer Details*\n" +
		fmt.Sprintf("Name: %s\n", customerName) +
		fmt.Sprintf("Phone: %s\n\n", customerPhone) +
		"*Note*: Payment integration is coming soon. For now, we'll confirm your booking via WhatsApp and arrange payment details."
}

// Link builds the wa.me deep link for the given business phone number
// (digits only, country code included) and message text.
func Link(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
