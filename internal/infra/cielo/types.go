package cielo

// Request/response shapes of the Cielo e-commerce API 3.0. Field names
// follow the vendor's JSON casing verbatim.

type Address struct {
	Street     string `json:"Street,omitempty"`
	Number     string `json:"Number,omitempty"`
	Complement string `json:"Complement,omitempty"`
	ZipCode    string `json:"ZipCode,omitempty"`
	City       string `json:"City,omitempty"`
	State      string `json:"State,omitempty"`
	Country    string `json:"Country,omitempty"`
	District   string `json:"District,omitempty"`
}

type Customer struct {
	Name            string   `json:"Name"`
	Email           string   `json:"Email,omitempty"`
	Identity        string   `json:"Identity,omitempty"`
	IdentityType    string   `json:"IdentityType,omitempty"`
	Address         *Address `json:"Address,omitempty"`
	DeliveryAddress *Address `json:"DeliveryAddress,omitempty"`
}

type Card struct {
	CardNumber     string `json:"CardNumber"`
	Holder         string `json:"Holder"`
	ExpirationDate string `json:"ExpirationDate"`
	SecurityCode   string `json:"SecurityCode,omitempty"`
	Brand          string `json:"Brand"`
}

// Payment carries the fields of every supported method; marshalling omits
// the ones the selected Type does not use.
type Payment struct {
	Type           string `json:"Type"`
	Amount         int64  `json:"Amount"`
	Installments   int    `json:"Installments,omitempty"`
	Capture        bool   `json:"Capture,omitempty"`
	SoftDescriptor string `json:"SoftDescriptor,omitempty"`
	CreditCard     *Card  `json:"CreditCard,omitempty"`

	DebitCard    *Card  `json:"DebitCard,omitempty"`
	Authenticate bool   `json:"Authenticate,omitempty"`
	ReturnURL    string `json:"ReturnUrl,omitempty"`

	QrCodeExpiration int `json:"QrCodeExpiration,omitempty"`

	Provider       string `json:"Provider,omitempty"`
	BoletoNumber   string `json:"BoletoNumber,omitempty"`
	ExpirationDate string `json:"ExpirationDate,omitempty"`
	Identification string `json:"Identification,omitempty"`
	Instructions   string `json:"Instructions,omitempty"`
	Demonstrative  string `json:"Demonstrative,omitempty"`
}

type SaleRequest struct {
	MerchantOrderID string   `json:"MerchantOrderId"`
	Customer        Customer `json:"Customer"`
	Payment         Payment  `json:"Payment"`
}

type PaymentResponse struct {
	PaymentID         string `json:"PaymentId"`
	Type              string `json:"Type"`
	Amount            int64  `json:"Amount"`
	CapturedAmount    int64  `json:"CapturedAmount,omitempty"`
	Status            int    `json:"Status"`
	ReturnCode        string `json:"ReturnCode,omitempty"`
	ReturnMessage     string `json:"ReturnMessage,omitempty"`
	AuthorizationCode string `json:"AuthorizationCode,omitempty"`
	ProofOfSale       string `json:"ProofOfSale,omitempty"`
	Tid               string `json:"Tid,omitempty"`

	// debit card 3-DS redirect
	AuthenticationURL string `json:"AuthenticationUrl,omitempty"`

	// pix
	QrCodeBase64Image string `json:"QrCodeBase64Image,omitempty"`
	QrCodeString      string `json:"QrCodeString,omitempty"`

	// boleto
	URL           string `json:"Url,omitempty"`
	BoletoNumber  string `json:"BoletoNumber,omitempty"`
	DigitableLine string `json:"DigitableLine,omitempty"`
	BarCodeNumber string `json:"BarCodeNumber,omitempty"`
}

type SaleResponse struct {
	MerchantOrderID string          `json:"MerchantOrderId"`
	Customer        *Customer       `json:"Customer,omitempty"`
	Payment         PaymentResponse `json:"Payment"`
}

// CaptureResponse is shared by the capture and void endpoints.
type CaptureResponse struct {
	Status            int    `json:"Status"`
	ReturnCode        string `json:"ReturnCode,omitempty"`
	ReturnMessage     string `json:"ReturnMessage,omitempty"`
	AuthorizationCode string `json:"AuthorizationCode,omitempty"`
	ProofOfSale       string `json:"ProofOfSale,omitempty"`
	Tid               string `json:"Tid,omitempty"`
}

// BoletoOptions tunes the bank-slip request; zero values fall back to the
// client defaults.
type BoletoOptions struct {
	ExpirationDate string
	Instructions   string
	Demonstrative  string
	BoletoNumber   string
}

// vendor error payloads arrive as a JSON array of code/message pairs
type vendorError struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
}
