package entity

import "time"

// Customer representa un cliente (cuenta corriente).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // CUIT/DNI
	Email     string
	CreatedAt time.Time
}
