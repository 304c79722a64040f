package catalog

// Money represents a monetary value in the display currency's minor units.
type Money = int64

// Service categories used by bundle discounts and recommendation ranking.
const (
	CategoryStreaming = "streaming"
	CategoryMusic     = "music"
)

// Service is an immutable reference entity describing one subscription service.
type Service struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	BasePrice    Money    `json:"basePrice" validate:"gt=0"`
	CurrentPrice Money    `json:"currentPrice" validate:"gte=0"`
	Popularity   float64  `json:"popularity" validate:"gte=0,lte=10"`
	Seasonal     bool     `json:"seasonal"`
	Features     []string `json:"features,omitempty"`
}

// OfferGroup is a fixed, pre-priced combination of service ids.
type OfferGroup struct {
	ID             string   `json:"id" validate:"required"`
	ServiceIDs     []string `json:"serviceIds" validate:"required,min=1"`
	FullPrice      Money    `json:"fullPrice" validate:"gt=0"`
	SellingPrice   Money    `json:"sellingPrice" validate:"gt=0"`
	PromotionLabel string   `json:"promotionLabel,omitempty"`
}

// Savings returns the absolute discount the offer carries over its full price.
func (o OfferGroup) Savings() Money {
	return o.FullPrice - o.SellingPrice
}

// Contains reports whether the offer covers the given service id.
func (o OfferGroup) Contains(id string) bool {
	for _, sid := range o.ServiceIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// Snapshot is the read-only reference data consumed by the pricing engine.
// It is immutable after construction and safe for concurrent use.
type Snapshot struct {
	services map[string]Service
	order    []string
	offers   []OfferGroup
}

// Service looks up a service by id.
func (s *Snapshot) Service(id string) (Service, bool) {
	svc, ok := s.services[id]
	return svc, ok
}

// Has reports whether the catalog knows the given service id.
func (s *Snapshot) Has(id string) bool {
	_, ok := s.services[id]
	return ok
}

// Services returns all services in catalog order.
func (s *Snapshot) Services() []Service {
	result := make([]Service, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.services[id])
	}
	return result
}

// Offers returns all offer groups in catalog order.
func (s *Snapshot) Offers() []OfferGroup {
	return append([]OfferGroup(nil), s.offers...)
}

// Len returns the number of services in the catalog.
func (s *Snapshot) Len() int {
	return len(s.order)
}
