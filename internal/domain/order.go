package domain

import "time"

type OrderStatus string

const (
	StatusPendente    OrderStatus = "pendente"
	StatusConfirmado  OrderStatus = "confirmado"
	StatusCancelado   OrderStatus = "cancelado"
	StatusReembolsado OrderStatus = "reembolsado"
	StatusFalha       OrderStatus = "falha"
	StatusAgendado    OrderStatus = "agendado"
)

type PaymentMethod string

const (
	MethodCredito PaymentMethod = "credito"
	MethodDebito  PaymentMethod = "debito"
	MethodPix     PaymentMethod = "pix"
	MethodBoleto  PaymentMethod = "boleto"
)

type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;size:16"`
	UserID          uint64        `json:"userId" gorm:"index;not null"`
	Items           []OrderItem   `json:"itens" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total           float64       `json:"total" gorm:"not null"`
	ShippingCost    float64       `json:"frete"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(16);index;default:'pendente'"`
	PaymentMethod   PaymentMethod `json:"metodoPagamento" gorm:"type:varchar(8);not null"`
	PaymentID       string        `json:"paymentId" gorm:"size:64;index"`
	GatewayResponse string        `json:"-" gorm:"type:text"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
	CancelledAt     *time.Time    `json:"cancelledAt,omitempty"`
}

// OrderItem snapshots product name and unit price at purchase time.
type OrderItem struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   string  `json:"orderId" gorm:"size:16;index;not null"`
	ProductID uint64  `json:"produtoId" gorm:"index;not null"`
	Name      string  `json:"nome" gorm:"size:255;not null"`
	UnitPrice float64 `json:"preco" gorm:"not null"`
	Quantity  int     `json:"quantidade" gorm:"not null"`
}

type User struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"nome" gorm:"size:255;not null"`
	Email      string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Document   string    `json:"cpf" gorm:"size:14"`
	Street     string    `json:"rua" gorm:"size:255"`
	Number     string    `json:"numero" gorm:"size:32"`
	Complement string    `json:"complemento" gorm:"size:255"`
	District   string    `json:"bairro" gorm:"size:128"`
	City       string    `json:"cidade" gorm:"size:128"`
	State      string    `json:"estado" gorm:"size:2"`
	ZipCode    string    `json:"cep" gorm:"size:9"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
