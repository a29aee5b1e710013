package domain

// BasketItem is a single device selected for rental. Identity is the
// device serial number; a basket may hold the same serial more than once
// and each occurrence is priced independently.
type BasketItem struct {
	Name         string `json:"name"`
	BasePrice    int32  `json:"base_price"`
	SerialNumber string `json:"serial_number"`
}
