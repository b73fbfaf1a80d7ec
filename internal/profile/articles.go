package profile

// DefaultArticles returns a fresh copy of the built-in education set.
func DefaultArticles() []Article {
	return []Article{
		{
			ID:    "purity",
			Title: "Understanding Gold Purity",
			Content: `
<h3>24K vs 22K vs 18K Gold</h3>
<p><strong>24 Karat (999 purity):</strong> Pure gold. Too soft for everyday jewellery, ideal for coins and bars.</p>
<p><strong>22 Karat (916 purity):</strong> 91.6% pure gold. Perfect balance of purity and durability. Most popular for Indian jewellery.</p>
<p><strong>18 Karat (750 purity):</strong> 75% pure gold. More durable, suitable for daily wear with intricate designs.</p>
`,
			Icon: "gem",
		},
		{
			ID:    "hallmark",
			Title: "BIS Hallmark Explained",
			Content: `
<h3>What is BIS Hallmark?</h3>
<p>BIS (Bureau of Indian Standards) Hallmark is a certification that guarantees the purity of gold. Look for:</p>
<ul>
  <li><strong>BIS Logo:</strong> Triangle with BIS written</li>
  <li><strong>Purity Grade:</strong> 916 for 22K, 750 for 18K</li>
  <li><strong>Assaying Center's Mark:</strong> Unique code of the testing center</li>
  <li><strong>Jeweller's ID:</strong> Unique identification number</li>
</ul>
`,
			Icon: "shield-check",
		},
		{
			ID:    "making-charges",
			Title: "Why Making Charges Differ",
			Content: `
<h3>Understanding Making Charges</h3>
<p>Making charges vary based on:</p>
<ul>
  <li><strong>Design Complexity:</strong> Intricate designs require more skill and time</li>
  <li><strong>Machine vs Handmade:</strong> Handcrafted pieces cost more</li>
  <li><strong>Weight:</strong> Heavier pieces may have lower per-gram charges</li>
  <li><strong>Wastage:</strong> Some designs result in gold wastage during making</li>
</ul>
<p>Typical range: ₹300 - ₹1500 per gram depending on complexity.</p>
`,
			Icon: "wrench",
		},
		{
			ID:    "916-meaning",
			Title: "What Does 916 Mean?",
			Content: `
<h3>Decoding 916</h3>
<p>916 indicates the purity of gold in parts per thousand:</p>
<p><strong>916 = 91.6% pure gold = 22 Karat</strong></p>
<p>This means out of 1000 parts, 916 parts are pure gold and 84 parts are other metals (usually copper or silver) for strength.</p>
<p>Similarly:</p>
<ul>
  <li>999 = 24K (99.9% pure)</li>
  <li>750 = 18K (75% pure)</li>
  <li>585 = 14K (58.5% pure)</li>
</ul>
`,
			Icon: "info",
		},
	}
}
