package model

// All returns every model the back office reads, in migration order.
func All() []interface{} {
	return []interface{}{
		&GameModel{},
		&BuyingModel{},
		&BuyingItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&RentalModel{},
		&TradeModel{},
		&TradeItemModel{},
	}
}
