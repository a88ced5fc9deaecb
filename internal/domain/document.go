package domain

import "github.com/shopspring/decimal"

const (
	DocumentTypeQuote  = "ORCAMENTO"
	DocumentTypeRental = "LOCACAO"
)

// RentalDocument carries everything a printable rental document shows.
// Rendering is left to the consumer.
type RentalDocument struct {
	FileName        string          `json:"file_name"`
	Type            string          `json:"type"`
	IsQuote         bool            `json:"is_quote"`
	Company         CompanyProfile  `json:"company"`
	Client          DocumentClient  `json:"client"`
	RentalID        int64           `json:"rental_id"`
	Status          RentalStatus    `json:"status"`
	Period          string          `json:"period"`
	QuoteValidUntil string          `json:"quote_valid_until,omitempty"`
	Delivery        string          `json:"delivery"`
	Currency        Currency        `json:"currency"`
	Items           []DocumentItem  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Freight         decimal.Decimal `json:"freight"`
	Total           decimal.Decimal `json:"total"`
	SubtotalText    string          `json:"subtotal_text"`
	FreightText     string          `json:"freight_text"`
	TotalText       string          `json:"total_text"`
	Notes           string          `json:"notes,omitempty"`
}

type CompanyProfile struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	LogoURI  string `json:"logo_uri"`
}

type DocumentClient struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
}

type DocumentItem struct {
	EquipmentName      string          `json:"equipment_name"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EquipmentValue     decimal.Decimal `json:"equipment_value"`
	LineTotal          decimal.Decimal `json:"line_total"`
	UnitPriceText      string          `json:"unit_price_text"`
	EquipmentValueText string          `json:"equipment_value_text"`
	LineTotalText      string          `json:"line_total_text"`
}
