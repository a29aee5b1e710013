package domain

type DeviceStatus string

const (
	DeviceStatusRentable   DeviceStatus = "RENTABLE"
	DeviceStatusRented     DeviceStatus = "RENTED"
	DeviceStatusUnrentable DeviceStatus = "UNRENTABLE"
)

// Device is a rentable unit as returned by the device search
// collaborator. SerialNumber is the unique identifier.
type Device struct {
	SerialNumber string       `json:"serialNumber"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	BasePrice    int32        `json:"price"`
	Place        string       `json:"place"`
	Status       DeviceStatus `json:"status"`
}

// DeviceSearchResponse is the envelope returned by the device search
// collaborator.
type DeviceSearchResponse struct {
	Code    ResponseCode `json:"code"`
	Message string       `json:"message,omitempty"`
	Devices []Device     `json:"deviceList"`
}
