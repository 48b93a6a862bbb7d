package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente con facturación recurrente mensual (MRR).
// La utilidad neta mensual se deriva de MRR menos gastos recurrentes (ver revshare.NetMonthlyProfit).
type Client struct {
	ID           string
	Name         string
	ContactEmail string
	MRR          decimal.Decimal // Monthly Recurring Revenue
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
