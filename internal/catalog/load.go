package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
)

// snapshotFile is the on-disk shape of a catalog snapshot.
type snapshotFile struct {
	Services []Service    `json:"services" validate:"required,min=1,dive"`
	Offers   []OfferGroup `json:"offers" validate:"dive"`
}

var validate = validator.New()

// New builds a validated snapshot from service and offer lists. Malformed
// reference data is a configuration error and must fail before any pricing
// call, so every invariant is checked here.
func New(services []Service, offers []OfferGroup) (*Snapshot, error) {
	if err := validate.Struct(snapshotFile{Services: services, Offers: offers}); err != nil {
		return nil, fmt.Errorf("catalog: invalid reference data: %w", err)
	}

	snap := &Snapshot{
		services: make(map[string]Service, len(services)),
		order:    make([]string, 0, len(services)),
	}
	for _, svc := range services {
		if _, dup := snap.services[svc.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate service id %q", svc.ID)
		}
		if svc.CurrentPrice == 0 {
			svc.CurrentPrice = svc.BasePrice
		}
		if svc.CurrentPrice > svc.BasePrice {
			return nil, fmt.Errorf("catalog: service %q current price exceeds base price", svc.ID)
		}
		snap.services[svc.ID] = svc
		snap.order = append(snap.order, svc.ID)
	}

	seenOffers := make(map[string]struct{}, len(offers))
	for _, offer := range offers {
		if _, dup := seenOffers[offer.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate offer id %q", offer.ID)
		}
		seenOffers[offer.ID] = struct{}{}
		if offer.SellingPrice > offer.FullPrice {
			return nil, fmt.Errorf("catalog: offer %q selling price %d exceeds full price %d", offer.ID, offer.SellingPrice, offer.FullPrice)
		}
		members := make(map[string]struct{}, len(offer.ServiceIDs))
		for _, id := range offer.ServiceIDs {
			if !snap.Has(id) {
				return nil, fmt.Errorf("catalog: offer %q references unknown service %q", offer.ID, id)
			}
			if _, dup := members[id]; dup {
				return nil, fmt.Errorf("catalog: offer %q lists service %q twice", offer.ID, id)
			}
			members[id] = struct{}{}
		}
		snap.offers = append(snap.offers, offer)
	}
	return snap, nil
}

// LoadFile reads and validates a catalog snapshot from a JSON file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return New(file.Services, file.Offers)
}
