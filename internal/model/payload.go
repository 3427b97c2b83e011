package model

// Payload returns the investor as a flat metadata map for the vector index.
// Nil check bounds are omitted.
func (i Investor) Payload() map[string]any {
	p := map[string]any{
		"name":        i.Name,
		"firm":        i.Firm,
		"sectors":     i.Sectors,
		"stages":      i.Stages,
		"geo":         i.Geo,
		"thesis":      i.Thesis,
		"constraints": i.Constraints,
		"profile":     i.Profile,
	}
	if i.Check.Min != nil {
		p["check_min"] = *i.Check.Min
	}
	if i.Check.Max != nil {
		p["check_max"] = *i.Check.Max
	}
	if i.Check.Currency != "" {
		p["check_currency"] = i.Check.Currency
	}
	return p
}

// InvestorFromPayload rebuilds an investor from vector index metadata.
// Unknown or mistyped keys are ignored.
func InvestorFromPayload(meta map[string]any) Investor {
	str := func(key string) string {
		if s, ok := meta[key].(string); ok {
			return s
		}
		return ""
	}
	num := func(key string) *float64 {
		switch v := meta[key].(type) {
		case float64:
			return Float(v)
		case float32:
			return Float(float64(v))
		case int64:
			return Float(float64(v))
		case int:
			return Float(float64(v))
		}
		return nil
	}
	return Investor{
		Name:        str("name"),
		Firm:        str("firm"),
		Sectors:     str("sectors"),
		Stages:      str("stages"),
		Geo:         str("geo"),
		Check:       MoneyRange{Min: num("check_min"), Max: num("check_max"), Currency: str("check_currency")},
		Thesis:      str("thesis"),
		Constraints: str("constraints"),
		Profile:     str("profile"),
	}
}
