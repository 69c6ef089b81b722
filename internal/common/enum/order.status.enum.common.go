package enum

type OrderStatusEnum string

const (
	ORDER_PENDING  OrderStatusEnum = "pending"
	ORDER_PAID     OrderStatusEnum = "paid"
	ORDER_FAILED   OrderStatusEnum = "failed"
	ORDER_NOTIFIED OrderStatusEnum = "notified"
)

func (e OrderStatusEnum) ToString() string {
	switch e {
	case ORDER_PENDING:
		return "pending"
	case ORDER_PAID:
		return "paid"
	case ORDER_FAILED:
		return "failed"
	case ORDER_NOTIFIED:
		return "notified"
	}
	return ""
}

func (e OrderStatusEnum) IsValid() bool {
	switch e {
	case ORDER_PENDING, ORDER_PAID, ORDER_FAILED, ORDER_NOTIFIED:
		return true
	}
	return false
}
