package model

import "encoding/json"

// investorJSON is the flat seed-file shape, with check fields at the top level.
type investorJSON struct {
	Name          string   `json:"name"`
	Firm          string   `json:"firm,omitempty"`
	Sectors       string   `json:"sectors,omitempty"`
	Stages        string   `json:"stages,omitempty"`
	Geo           string   `json:"geo,omitempty"`
	CheckMin      *float64 `json:"check_min,omitempty"`
	CheckMax      *float64 `json:"check_max,omitempty"`
	CheckCurrency string   `json:"check_currency,omitempty"`
	Thesis        string   `json:"thesis,omitempty"`
	Constraints   string   `json:"constraints,omitempty"`
	Profile       string   `json:"profile,omitempty"`
}

// MarshalJSON flattens the check range into check_min/check_max/check_currency.
func (i Investor) MarshalJSON() ([]byte, error) {
	return json.Marshal(investorJSON{
		Name:          i.Name,
		Firm:          i.Firm,
		Sectors:       i.Sectors,
		Stages:        i.Stages,
		Geo:           i.Geo,
		CheckMin:      i.Check.Min,
		CheckMax:      i.Check.Max,
		CheckCurrency: i.Check.Currency,
		Thesis:        i.Thesis,
		Constraints:   i.Constraints,
		Profile:       i.Profile,
	})
}

// UnmarshalJSON reads the flat seed-file shape.
func (i *Investor) UnmarshalJSON(data []byte) error {
	var raw investorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Investor{
		Name:        raw.Name,
		Firm:        raw.Firm,
		Sectors:     raw.Sectors,
		Stages:      raw.Stages,
		Geo:         raw.Geo,
		Check:       MoneyRange{Min: raw.CheckMin, Max: raw.CheckMax, Currency: raw.CheckCurrency},
		Thesis:      raw.Thesis,
		Constraints: raw.Constraints,
		Profile:     raw.Profile,
	}
	return nil
}
