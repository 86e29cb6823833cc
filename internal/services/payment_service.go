package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/cielo"
	rabbit "github.com/henriquelv/rottava-agro-pet-sub001/internal/infra/rabbitmq"
	"github.com/henriquelv/rottava-agro-pet-sub001/internal/repository"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrMissingCardData       = errors.New("dados do cartão ausentes")
	ErrDebitCardNotSupported = errors.New("pagamento com cartão de débito não suportado")
	ErrUnknownPaymentMethod  = errors.New("método de pagamento desconhecido")
)

const (
	defaultSoftDescriptor     = "RottavaAgroPet"
	defaultBoletoInstructions = "Não receber após o vencimento."
	paymentCacheTTL           = 10 * time.Second
)

// PaymentService turns a checkout into a gateway transaction plus a
// persisted order. Every operation returns a PaymentResult envelope;
// errors never escape to the caller.
type PaymentService struct {
	gateway     cielo.Gateway
	repo        repository.OrderRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
	logger      *slog.Logger
	queries     singleflight.Group
	newOrderID  func() string
}

func NewPaymentService(gw cielo.Gateway, repo repository.OrderRepository, pub rabbit.PublisherInterface, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		gateway:    gw,
		repo:       repo,
		publisher:  pub,
		logger:     logger,
		newOrderID: generateOrderID,
	}
}

func (s *PaymentService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func generateOrderID() string {
	id := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

func (s *PaymentService) ProcessPayment(ctx context.Context, checkout domain.Checkout) domain.PaymentResult {
	orderID := s.newOrderID()

	total := checkout.Options.ShippingCost
	for _, item := range checkout.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	customer := toGatewayCustomer(checkout.Customer)

	var (
		sale *cielo.SaleResponse
		err  error
	)
	switch checkout.Payment.Type {
	case domain.MethodCredito:
		if checkout.Payment.Card == nil {
			err = ErrMissingCardData
			break
		}
		softDescriptor := checkout.Options.SoftDescriptor
		if softDescriptor == "" {
			softDescriptor = defaultSoftDescriptor
		}
		sale, err = s.gateway.CreateCreditCardPayment(ctx, orderID, customer, total,
			toGatewayCard(*checkout.Payment.Card), checkout.Payment.Installments, true, softDescriptor)

	case domain.MethodDebito:
		// The debit flow needs the authentication-redirect round trip on
		// the confirmation page, which the storefront never wired up.
		err = ErrDebitCardNotSupported

	case domain.MethodPix:
		sale, err = s.gateway.CreatePixPayment(ctx, orderID, customer, total,
			checkout.Payment.PixExpirationMinutes)

	case domain.MethodBoleto:
		instructions := checkout.Payment.BoletoInstructions
		if instructions == "" {
			instructions = defaultBoletoInstructions
		}
		sale, err = s.gateway.CreateBoletoPayment(ctx, orderID, customer, total, cielo.BoletoOptions{
			ExpirationDate: checkout.Payment.BoletoDueDate,
			Instructions:   instructions,
			BoletoNumber:   checkout.Payment.BoletoNumber,
		})

	default:
		err = fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, checkout.Payment.Type)
	}
	if err != nil {
		s.logger.Error("payment failed", "orderId", orderID, "method", checkout.Payment.Type, "error", err)
		return s.failure(err)
	}

	status := MapVendorStatus(sale.Payment.Status)
	raw, _ := json.Marshal(sale)

	order := &domain.Order{
		ID:              orderID,
		Items:           toOrderItems(orderID, checkout.Items),
		Total:           total,
		ShippingCost:    checkout.Options.ShippingCost,
		Status:          status,
		PaymentMethod:   checkout.Payment.Type,
		PaymentID:       sale.Payment.PaymentID,
		GatewayResponse: string(raw),
	}
	user := toUser(checkout.Customer)

	if err := s.repo.CreateWithCustomer(ctx, user, order); err != nil {
		s.logger.Error("order persistence failed", "orderId", orderID, "paymentId", sale.Payment.PaymentID, "error", err)
		return domain.PaymentResult{Success: false, Error: "falha ao registrar o pedido"}
	}

	go s.publishPaymentProcessed(context.Background(), order, checkout.Customer.Email)

	return domain.PaymentResult{
		Success:            true,
		OrderID:            orderID,
		PaymentID:          sale.Payment.PaymentID,
		Status:             status,
		TransactionDetails: sale.Payment,
	}
}

// GetPayment queries the gateway for current transaction state. Concurrent
// lookups for the same payment id are collapsed, and results are cached
// briefly.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) domain.PaymentResult {
	cacheKey := "pagamento:" + paymentID
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var res domain.PaymentResult
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				return res
			}
		}
	}

	v, err, _ := s.queries.Do(paymentID, func() (any, error) {
		return s.gateway.Get(ctx, paymentID)
	})
	if err != nil {
		return s.failure(err)
	}
	sale := v.(*cielo.SaleResponse)

	res := domain.PaymentResult{
		Success:            true,
		OrderID:            sale.MerchantOrderID,
		PaymentID:          sale.Payment.PaymentID,
		Status:             MapVendorStatus(sale.Payment.Status),
		TransactionDetails: sale.Payment,
	}
	if s.redisClient != nil {
		if data, err := json.Marshal(res); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, paymentCacheTTL)
		}
	}
	return res
}

func (s *PaymentService) CapturePayment(ctx context.Context, paymentID string, amount *float64) domain.PaymentResult {
	resp, err := s.gateway.Capture(ctx, paymentID, amount)
	if err != nil {
		return s.failure(err)
	}
	return s.applyTransition(ctx, paymentID, MapVendorStatus(resp.Status), resp)
}

func (s *PaymentService) CancelPayment(ctx context.Context, paymentID string, amount *float64) domain.PaymentResult {
	resp, err := s.gateway.Void(ctx, paymentID, amount)
	if err != nil {
		return s.failure(err)
	}
	return s.applyTransition(ctx, paymentID, MapVendorStatus(resp.Status), resp)
}

// GetOrder serves the storefront order page.
func (s *PaymentService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// applyTransition updates the stored order after a capture/void and drops
// the stale cache entries.
func (s *PaymentService) applyTransition(ctx context.Context, paymentID string, status domain.OrderStatus, details any) domain.PaymentResult {
	res := domain.PaymentResult{
		Success:            true,
		PaymentID:          paymentID,
		Status:             status,
		TransactionDetails: details,
	}

	order, err := s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		s.logger.Error("order lookup failed", "paymentId", paymentID, "error", err)
		return domain.PaymentResult{Success: false, Error: "falha ao atualizar o pedido"}
	}
	if order == nil {
		// vendor-side transaction exists but was never persisted locally
		s.logger.Warn("no local order for payment", "paymentId", paymentID)
		return res
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, status); err != nil {
		s.logger.Error("order status update failed", "orderId", order.ID, "error", err)
		return domain.PaymentResult{Success: false, Error: "falha ao atualizar o pedido"}
	}
	res.OrderID = order.ID

	if s.redisClient != nil {
		s.redisClient.Del(ctx, "pagamento:"+paymentID, "pedido:"+order.ID)
	}
	return res
}

func (s *PaymentService) publishPaymentProcessed(ctx context.Context, order *domain.Order, email string) {
	evt := domain.PaymentProcessedEvent{
		OrderID:       order.ID,
		PaymentID:     order.PaymentID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total,
		CustomerEmail: email,
		CreatedAt:     time.Now(),
	}
	if err := s.publisher.Publish(ctx, "pagamento.processado", evt); err != nil {
		s.logger.Error("failed to publish payment event", "orderId", order.ID, "error", err)
	}
}

// failure folds any error into the envelope, keeping the gateway status
// code and raw vendor payload when available.
func (s *PaymentService) failure(err error) domain.PaymentResult {
	var gerr *cielo.Error
	if errors.As(err, &gerr) {
		res := domain.PaymentResult{Success: false, Error: gerr.Message, StatusCode: gerr.StatusCode}
		if len(gerr.Body) > 0 {
			var details any
			if json.Unmarshal(gerr.Body, &details) == nil {
				res.Details = details
			}
		}
		return res
	}
	return domain.PaymentResult{Success: false, Error: err.Error()}
}

func toGatewayCustomer(c domain.CheckoutCustomer) cielo.Customer {
	addr := cielo.Address{
		Street:     c.Address.Street,
		Number:     c.Address.Number,
		Complement: c.Address.Complement,
		District:   c.Address.District,
		City:       c.Address.City,
		State:      c.Address.State,
		ZipCode:    c.Address.ZipCode,
		Country:    "BRA",
	}
	delivery := addr
	return cielo.Customer{
		Name:            c.Name,
		Email:           c.Email,
		Identity:        c.Document,
		IdentityType:    "CPF",
		Address:         &addr,
		DeliveryAddress: &delivery,
	}
}

func toGatewayCard(card domain.CardData) cielo.Card {
	return cielo.Card{
		CardNumber:     card.Number,
		Holder:         card.Holder,
		ExpirationDate: card.ExpirationDate,
		SecurityCode:   card.SecurityCode,
		Brand:          card.Brand,
	}
}

func toOrderItems(orderID string, items []domain.CheckoutItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return out
}

func toUser(c domain.CheckoutCustomer) *domain.User {
	return &domain.User{
		Name:       c.Name,
		Email:      c.Email,
		Document:   c.Document,
		Street:     c.Address.Street,
		Number:     c.Address.Number,
		Complement: c.Address.Complement,
		District:   c.Address.District,
		City:       c.Address.City,
		State:      c.Address.State,
		ZipCode:    c.Address.ZipCode,
	}
}
