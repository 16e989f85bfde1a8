package domain

import "strings"

// CurrencyForEmployeeType maps an employment classification to its payout currency.
// Exact classifications win; otherwise the value is searched for "usa" or "india".
// Anything else, including an empty value, maps to DefaultCurrency.
func CurrencyForEmployeeType(employeeType string) Currency {
	t := strings.ToLower(strings.TrimSpace(employeeType))

	switch EmployeeType(t) {
	case EmployeeTypePermanentUSA, EmployeeTypeFreelancerUSA:
		return CurrencyUSD
	case EmployeeTypePermanentIndia, EmployeeTypeFreelancerIndia, "permanent":
		return CurrencyINR
	}

	switch {
	case strings.Contains(t, "usa"):
		return CurrencyUSD
	case strings.Contains(t, "india"):
		return CurrencyINR
	}
	return DefaultCurrency
}

// ParseCurrency normalizes a currency code. ok is false for unsupported codes.
func ParseCurrency(raw string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	return c, c.IsValid()
}

// AuthoritativeCurrency returns the currency every monetary record of the user
// must carry: derived from the employment classification when present, else the
// stored currency when it is valid, else DefaultCurrency.
func AuthoritativeCurrency(u User) Currency {
	if strings.TrimSpace(u.EmployeeType) != "" {
		return CurrencyForEmployeeType(u.EmployeeType)
	}
	if u.Currency != nil && u.Currency.IsValid() {
		return *u.Currency
	}
	return DefaultCurrency
}
