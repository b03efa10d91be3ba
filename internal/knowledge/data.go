package knowledge

// Built-in reference data. Loaded once at startup and never mutated.

var seedFAQs = []FAQ{
	{
		Question: "What is term life insurance?",
		Answer:   "Term life insurance is a type of life insurance that provides coverage for a specific period or 'term'. If you pass away during this term, your beneficiaries receive the death benefit. It's typically the most affordable type of life insurance and is ideal for temporary needs like income replacement or debt coverage.",
		Category: "life_insurance",
		Keywords: []string{"term", "life", "insurance", "coverage", "death benefit", "affordable"},
	},
	{
		Question: "How much life insurance do I need?",
		Answer:   "A general rule of thumb is 10-12 times your annual income. However, the exact amount depends on your debts, family size, lifestyle, and financial goals. Consider factors like outstanding loans, children's education costs, and your spouse's income when calculating your coverage needs.",
		Category: "life_insurance",
		Keywords: []string{"amount", "coverage", "income", "family", "debts", "calculate"},
	},
	{
		Question: "What is health insurance premium?",
		Answer:   "Health insurance premium is the amount you pay regularly (monthly, quarterly, or annually) to keep your health insurance policy active. It's like a subscription fee that ensures you have coverage when you need medical care. Premiums vary based on age, health condition, coverage amount, and policy features.",
		Category: "health_insurance",
		Keywords: []string{"premium", "health", "payment", "monthly", "coverage", "medical"},
	},
	{
		Question: "What is a deductible in insurance?",
		Answer:   "A deductible is the amount you pay out of pocket before your insurance coverage kicks in. For example, if you have a ₹5,000 deductible and a medical bill of ₹20,000, you pay the first ₹5,000, and insurance covers the remaining ₹15,000. Higher deductibles usually mean lower premiums.",
		Category: "general",
		Keywords: []string{"deductible", "out of pocket", "coverage", "medical bill", "premium"},
	},
	{
		Question: "How do I file an insurance claim?",
		Answer:   "To file an insurance claim: 1) Contact your insurer immediately after the incident, 2) Fill out the claim form completely, 3) Gather all required documents (medical reports, bills, police reports if applicable), 4) Submit everything to your insurer, 5) Follow up regularly on claim status. Most insurers now offer online claim filing for faster processing.",
		Category: "claims",
		Keywords: []string{"claim", "file", "documents", "process", "submit", "online"},
	},
}

var seedProducts = []Product{
	{
		ID:          "term_life_basic",
		Name:        "SecureLife Term Plan",
		Type:        "life",
		Description: "Comprehensive term life insurance with high coverage at affordable premiums",
		KeyFeatures: []string{
			"Coverage up to ₹2 crores",
			"Premium starting from ₹500/month",
			"Tax benefits under Section 80C",
			"Online policy management",
			"Quick claim settlement",
		},
		Eligibility: []string{
			"Age: 18-65 years",
			"Good health condition",
			"Regular income proof",
			"Medical examination may be required",
		},
		PremiumRange: "₹500 - ₹5,000 per month",
	},
	{
		ID:          "health_family",
		Name:        "FamilyCare Health Insurance",
		Type:        "health",
		Description: "Complete family health coverage with cashless treatment at 10,000+ hospitals",
		KeyFeatures: []string{
			"Family floater coverage",
			"Cashless treatment",
			"Pre and post hospitalization",
			"Day care procedures covered",
			"Annual health check-ups",
		},
		Eligibility: []string{
			"Age: 18-65 years for adults",
			"Children: 3 months to 25 years",
			"Pre-existing conditions after waiting period",
			"Family size up to 6 members",
		},
		PremiumRange: "₹8,000 - ₹25,000 per year",
	},
}

var seedPolicies = []PolicyInfo{
	{
		Type:       "Life Insurance",
		Coverage:   "Death benefit, terminal illness, accidental death",
		Exclusions: []string{"Suicide within first year", "Death due to war", "Self-inflicted injuries"},
		ClaimProcess: []string{
			"Notify insurer within 30 days",
			"Submit death certificate",
			"Provide medical records",
			"Complete claim forms",
			"Await investigation and settlement",
		},
	},
	{
		Type:       "Health Insurance",
		Coverage:   "Hospitalization, surgery, medical treatments, ambulance",
		Exclusions: []string{"Pre-existing conditions (first 2-4 years)", "Cosmetic surgery", "Dental treatment"},
		ClaimProcess: []string{
			"Cashless: Pre-authorization at network hospital",
			"Reimbursement: Pay first, then submit bills",
			"Submit all medical documents",
			"Claim settlement within 30 days",
		},
	},
}
