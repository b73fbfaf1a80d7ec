package inquiry

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

// rupees formats v as ₹1,234,567.89.
func rupees(v float64) string {
	s := decimal.NewFromFloat(v).StringFixedBank(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "₹" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func itemName(li LineItem) string {
	if strings.TrimSpace(li.Name) == "" {
		return "Item"
	}
	return li.Name
}

func orEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Chat-ops text uses Telegram's HTML parse mode, so every customer value is escaped.
func orderChatText(o *OrderIntent) string {
	e := html.EscapeString
	var b strings.Builder
	b.WriteString("🔔 <b>New Order Intent</b>\n\n")
	fmt.Fprintf(&b, "<b>Order ID:</b> %s\n", e(o.OrderID))
	fmt.Fprintf(&b, "<b>Customer:</b> %s\n", e(o.CustomerName))
	fmt.Fprintf(&b, "<b>Phone:</b> %s\n", e(o.CustomerPhone))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", e(o.CustomerEmail))
	fmt.Fprintf(&b, "<b>Occasion:</b> %s\n", e(o.Occasion))
	fmt.Fprintf(&b, "<b>Timeline:</b> %s\n\n", e(o.Timeline))
	b.WriteString("<b>Items:</b>\n")
	for _, li := range o.Items {
		fmt.Fprintf(&b, "• %s - Est. %s\n", e(itemName(li)), rupees(li.Estimate))
	}
	fmt.Fprintf(&b, "\n<b>Total Estimate:</b> %s\n\n", rupees(o.TotalEstimate))
	fmt.Fprintf(&b, "<b>Message:</b> %s", e(orEmpty(o.Message, "None")))
	return b.String()
}

func contactChatText(c *ContactInquiry) string {
	e := html.EscapeString
	var b strings.Builder
	b.WriteString("📩 <b>New Contact Inquiry</b>\n\n")
	fmt.Fprintf(&b, "<b>Inquiry ID:</b> %s\n", e(c.InquiryID))
	fmt.Fprintf(&b, "<b>Name:</b> %s\n", e(c.Name))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", e(c.Email))
	fmt.Fprintf(&b, "<b>Phone:</b> %s\n", e(c.Phone))
	fmt.Fprintf(&b, "<b>Subject:</b> %s\n\n", e(c.Subject))
	fmt.Fprintf(&b, "<b>Message:</b>\n%s", e(c.Message))
	return b.String()
}

var emailFuncs = template.FuncMap{
	"rupees":   rupees,
	"itemName": itemName,
	"orEmpty":  orEmpty,
}

var orderEmailTmpl = template.Must(template.New("order").Funcs(emailFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #064E3B;">New Order Intent Received</h2>
  <p><strong>Order ID:</strong> {{.OrderID}}</p>
  <p><strong>Customer:</strong> {{.CustomerName}}</p>
  <p><strong>Phone:</strong> {{.CustomerPhone}}</p>
  <p><strong>Email:</strong> {{.CustomerEmail}}</p>
  <p><strong>Occasion:</strong> {{.Occasion}}</p>
  <p><strong>Timeline:</strong> {{.Timeline}}</p>
  <h3>Items:</h3>
  <ul>{{range .Items}}<li>{{itemName .}} - Est. {{rupees .Estimate}}</li>{{end}}</ul>
  <p><strong>Total Estimate:</strong> {{rupees .TotalEstimate}}</p>
  <p><strong>Message:</strong> {{orEmpty .Message "None"}}</p>
</div>
`))

var contactEmailTmpl = template.Must(template.New("contact").Funcs(emailFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #064E3B;">New Contact Inquiry</h2>
  <p><strong>Inquiry ID:</strong> {{.InquiryID}}</p>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>Message:</strong></p>
  <p>{{.Message}}</p>
</div>
`))

func renderHTML(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
