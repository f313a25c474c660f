package domain

import "strings"

// MaskName keeps the first rune and redacts the rest: "김철수" -> "김*".
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0]) + "*"
}

// MaskPhone keeps the first 3 and last 2 digits: "010-1234-5678" -> "010***78".
func MaskPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 5 {
		return strings.Repeat("*", len(d))
	}
	return d[:3] + "***" + d[len(d)-2:]
}

func (c Customer) Masked() Customer {
	return Customer{
		Name:  MaskName(c.Name),
		Phone: MaskPhone(c.Phone),
	}
}
