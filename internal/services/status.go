package services

import "github.com/henriquelv/rottava-agro-pet-sub001/internal/domain"

// vendorStatusMap is the single source of truth for collapsing Cielo
// transaction statuses into the order lifecycle. Codes 0 (not finished)
// and 1 (authorized) intentionally map to the same domain status.
var vendorStatusMap = map[int]domain.OrderStatus{
	0:  domain.StatusPendente,
	1:  domain.StatusPendente,
	2:  domain.StatusConfirmado,
	3:  domain.StatusCancelado,
	10: domain.StatusCancelado,
	11: domain.StatusReembolsado,
	12: domain.StatusPendente,
	13: domain.StatusFalha,
	20: domain.StatusAgendado,
}

func MapVendorStatus(code int) domain.OrderStatus {
	if s, ok := vendorStatusMap[code]; ok {
		return s
	}
	return domain.StatusPendente
}
