package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record represents one aggregated portfolio slice of the consolidated delinquency table
type Record struct {
	ReferenceDate string          `json:"data_base"` // Format: DD/MM/YYYY
	State         string          `json:"uf"`
	Client        string          `json:"cliente"` // Raw category label, e.g. "PF - Pessoa Física"
	Size          string          `json:"porte"`
	Occupation    string          `json:"ocupacao"`
	Sector        string          `json:"cnae_secao"`
	Modality      string          `json:"modalidade"`
	Active        decimal.Decimal `json:"soma_carteira_ativa"`
	Delinquent    decimal.Decimal `json:"soma_carteira_inadimplida_arrastada"`
	Problematic   decimal.Decimal `json:"soma_ativo_problematico"`
	DueWithin90   decimal.Decimal `json:"soma_a_vencer_ate_90_dias"`
	Operations    int64           `json:"soma_numero_de_operacoes"`
}

// Period identifies the single reference month a report covers
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// NewPeriod validates and builds a Period
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month: %d", month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year: %d", year)
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// Contains reports whether t falls in the period
func (p Period) Contains(t time.Time) bool {
	return t.Month() == p.Month && t.Year() == p.Year
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var monthAbbrev = [...]string{
	"JAN", "FEV", "MAR", "ABR", "MAI", "JUN",
	"JUL", "AGO", "SET", "OUT", "NOV", "DEZ",
}

// MonthName returns the Portuguese month name, e.g. "dezembro"
func (p Period) MonthName() string {
	return monthNames[p.Month-1]
}

// Long returns the period as "dezembro de 2024"
func (p Period) Long() string {
	return fmt.Sprintf("%s de %d", p.MonthName(), p.Year)
}

// Short returns the period as "DEZ/2024"
func (p Period) Short() string {
	return fmt.Sprintf("%s/%d", monthAbbrev[p.Month-1], p.Year)
}
