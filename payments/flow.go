package payments

import (
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with English digit grouping, e.g. 1,500.5.
// It goes through float64 and keeps at most three fraction digits so flow
// text reads exactly like the amounts on the payments page. Amounts beyond
// float64 precision lose their low digits; use Decimal.String for exact
// values.
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprint(number.Decimal(amount.InexactFloat64()))
}

// PartyLabels returns the labels of the parties holding role, joined by
// ", ".
func PartyLabels(parties []models.Party, role string) string {
	labels := make([]string, 0, len(parties))
	for _, p := range parties {
		if p.HasRole(role) {
			labels = append(labels, ParticipantLabel(p))
		}
	}
	return strings.Join(labels, ", ")
}

// PaymentFlow describes who paid whom.
func PaymentFlow(amount decimal.Decimal, parties []models.Party) string {
	prefix := "₹" + FormatAmount(amount)
	payers := PartyLabels(parties, models.RolePayer)
	payees := PartyLabels(parties, models.RolePayee)

	switch {
	case payers != "" && payees != "":
		return prefix + " paid by " + payers + " to " + payees
	case payers != "":
		return prefix + " paid by " + payers
	case payees != "":
		return prefix + " paid to " + payees
	case len(parties) > 0:
		return prefix + " involving " + ParticipantLabel(parties[0])
	}
	return prefix
}

var documentKeywords = []string{"doc", "document", "stamp", "registration", "fees", "charges"}

// IsDocumentPayment guesses whether a payment covers documentation costs:
// its text mentions a documentation keyword, or it is a small payment with
// a single owner party.
func IsDocumentPayment(p models.Payment) bool {
	text := strings.ToLower(p.Notes + " " + p.Reference + " " + p.PaymentMode)
	for _, kw := range documentKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return len(p.Parties) == 1 &&
		p.Parties[0].PartyType == models.PartyTypeOwner &&
		p.Amount.LessThan(decimal.NewFromInt(50000))
}
