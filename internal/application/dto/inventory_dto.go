package dto

import "time"

// MovementRequest body para POST /api/inventory/in y /api/inventory/out.
type MovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjust.
type AdjustRequest struct {
	ProductID      string `json:"product_id"`
	TargetQuantity int64  `json:"target_quantity"`
	Reason         string `json:"reason"`
	Reference      string `json:"reference,omitempty"`
}

// MovementResponse movimiento registrado con el stock antes y después.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Direction   string    `json:"direction"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	Reference   string    `json:"reference,omitempty"`
	StockBefore int64     `json:"stock_before"`
	StockAfter  int64     `json:"stock_after"`
	CreatedAt   time.Time `json:"created_at"`
}

// KardexEntry línea del kardex: movimiento anotado con el saldo corrido.
type KardexEntry struct {
	MovementID   string    `json:"movement_id"`
	Date         time.Time `json:"date"`
	Direction    string    `json:"direction"`
	Quantity     int64     `json:"quantity"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	BalanceBefore int64    `json:"balance_before"`
	BalanceAfter  int64    `json:"balance_after"`
}

// KardexResponse historial cronológico de movimientos con saldo corrido.
// InitialBalance es el stock reconstruido desde los movimientos anteriores
// al inicio del rango consultado.
type KardexResponse struct {
	ProductID      string        `json:"product_id"`
	From           *time.Time    `json:"from,omitempty"`
	To             *time.Time    `json:"to,omitempty"`
	InitialBalance int64         `json:"initial_balance"`
	FinalBalance   int64         `json:"final_balance"`
	TotalIn        int64         `json:"total_in"`
	TotalOut       int64         `json:"total_out"`
	Entries        []KardexEntry `json:"entries"`
}

// StockStatsResponse agregados de inventario de un producto.
type StockStatsResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int64  `json:"current_stock"`
	TotalIn      int64  `json:"total_in"`
	TotalOut     int64  `json:"total_out"`
	MinStock     int64  `json:"min_stock"`
	BelowMinimum bool   `json:"below_minimum"`
}
