package domain

// Checkout is the payload the storefront submits when the customer confirms
// a purchase. Wire names follow the storefront API (Portuguese).
type Checkout struct {
	Items    []CheckoutItem   `json:"produtos" binding:"required,min=1,dive"`
	Customer CheckoutCustomer `json:"cliente" binding:"required"`
	Payment  PaymentSelection `json:"metodoPagamento" binding:"required"`
	Options  CheckoutOptions  `json:"opcoes"`
}

type CheckoutItem struct {
	ProductID uint64  `json:"produtoId" binding:"required"`
	Name      string  `json:"nome" binding:"required"`
	UnitPrice float64 `json:"preco" binding:"required,min=0"`
	Quantity  int     `json:"quantidade" binding:"required,min=1"`
}

type CheckoutCustomer struct {
	Name     string          `json:"nome" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Document string          `json:"cpf" binding:"required"`
	Address  CheckoutAddress `json:"endereco"`
}

type CheckoutAddress struct {
	Street     string `json:"rua"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	State      string `json:"estado"`
	ZipCode    string `json:"cep"`
}

// PaymentSelection is a tagged union discriminated by Type. Only the fields
// for the selected method are read; the service switches exhaustively on
// Type so a new method is a compile-visible decision point.
type PaymentSelection struct {
	Type PaymentMethod `json:"tipo" binding:"required,oneof=credito debito pix boleto"`

	// credito / debito
	Card         *CardData `json:"cartao,omitempty"`
	Installments int       `json:"parcelas,omitempty"`
	ReturnURL    string    `json:"urlRetorno,omitempty"`

	// pix
	PixExpirationMinutes int `json:"expiracaoMinutos,omitempty"`

	// boleto
	BoletoDueDate      string `json:"dataVencimento,omitempty"`
	BoletoInstructions string `json:"instrucoes,omitempty"`
	BoletoNumber       string `json:"numeroBoleto,omitempty"`
}

type CardData struct {
	Number         string `json:"numero"`
	Holder         string `json:"titular"`
	ExpirationDate string `json:"validade"`
	SecurityCode   string `json:"cvv"`
	Brand          string `json:"bandeira"`
}

type CheckoutOptions struct {
	ShippingCost   float64 `json:"frete"`
	SoftDescriptor string  `json:"descricaoFatura"`
}

// PaymentResult is the uniform envelope returned by every payment
// operation. The service never propagates an error to its caller; failures
// are folded into Success=false.
type PaymentResult struct {
	Success            bool        `json:"success"`
	OrderID            string      `json:"orderId,omitempty"`
	PaymentID          string      `json:"paymentId,omitempty"`
	Status             OrderStatus `json:"status,omitempty"`
	TransactionDetails any         `json:"transactionDetails,omitempty"`
	Error              string      `json:"error,omitempty"`
	StatusCode         int         `json:"statusCode,omitempty"`
	Details            any         `json:"details,omitempty"`
}
