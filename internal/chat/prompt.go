package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
)

const Apology = "I apologize, but I'm having trouble connecting right now. Please try again or contact us directly for assistance with your jewellery needs."

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CatalogueSummary renders one line per item.
func CatalogueSummary(items []catalogue.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s, %s, %s-%sg, ₹%s/g labour",
			it.Name, it.Type, it.Purity, num(it.WeightMin), num(it.WeightMax), num(it.LabourCostPerGram)))
	}
	return strings.Join(lines, "\n")
}

func SystemPrompt(q pricing.Quote, items []catalogue.Item) string {
	var b strings.Builder
	b.WriteString("You are an expert jewellery consultant for a traditional Indian goldsmith.\n")
	b.WriteString("Your role is to help customers discover the perfect jewellery based on their needs.\n\n")

	b.WriteString("CURRENT GOLD PRICES (per gram):\n")
	fmt.Fprintf(&b, "- 24K Gold: ₹%.2f\n", q.Gold24K)
	fmt.Fprintf(&b, "- 22K Gold: ₹%.2f\n", q.Gold22K)
	fmt.Fprintf(&b, "- 18K Gold: ₹%.2f\n", q.Gold18K)
	fmt.Fprintf(&b, "- Silver: ₹%.2f\n\n", q.Silver)

	b.WriteString("AVAILABLE CATALOGUE:\n")
	b.WriteString(CatalogueSummary(items))
	b.WriteString("\n\n")

	b.WriteString("PRICING FORMULA:\n")
	b.WriteString("Final Price = (Gold Price × Weight × Purity Factor) + Labour Cost + 3% GST\n\n")

	b.WriteString(`GUIDELINES:
1. Ask about occasion, budget, and preferences
2. Recommend specific items from catalogue
3. Provide transparent price estimates
4. Explain purity differences when asked
5. Be warm, helpful, and build trust
6. Always suggest contacting for final customization
7. Prices are estimates - final pricing requires consultation

Keep responses concise and helpful. Use Indian Rupees (₹) for all prices.`)
	return b.String()
}
