package model

import (
	"encoding/json"
	"fmt"
)

// Price is a tri-state price value: unset (no price recorded), an explicit
// amount, or under construction. An explicit amount of 0 is a real price and
// is distinct from unset at every layer.
type Price struct {
	state  priceState
	amount float64
}

type priceState uint8

const (
	priceUnset priceState = iota
	priceSet
	priceUnderConstruction
)

// NoPrice returns the unset price.
func NoPrice() Price {
	return Price{}
}

// PriceOf returns an explicit price.
func PriceOf(amount float64) Price {
	return Price{state: priceSet, amount: amount}
}

// UnderConstruction returns the under-construction sentinel price.
func UnderConstruction() Price {
	return Price{state: priceUnderConstruction}
}

// IsSet reports whether the price carries an explicit amount.
func (p Price) IsSet() bool { return p.state == priceSet }

// IsUnset reports whether no price is recorded.
func (p Price) IsUnset() bool { return p.state == priceUnset }

// IsUnderConstruction reports whether the price is the under-construction
// sentinel.
func (p Price) IsUnderConstruction() bool { return p.state == priceUnderConstruction }

// Amount returns the explicit amount and whether one is set.
func (p Price) Amount() (float64, bool) {
	return p.amount, p.state == priceSet
}

// OrBase resolves an override against a base price: an unset override falls
// back to the base (which may itself be absent), anything else wins.
func (p Price) OrBase(base *float64) Price {
	if p.state != priceUnset {
		return p
	}
	if base == nil {
		return NoPrice()
	}
	return PriceOf(*base)
}

func (p Price) String() string {
	switch p.state {
	case priceSet:
		return fmt.Sprintf("%.2f", p.amount)
	case priceUnderConstruction:
		return "under construction"
	default:
		return "unset"
	}
}

// OverrideSet holds the per-model price overrides, keyed by service or
// sub-service id, with the SIM unlock entry holding a nested carrier-keyed
// map. The whole set can also be flagged all-under-construction: a bulk
// maintenance state distinct from any per-key value.
//
// The zero value is an empty set (no overrides).
type OverrideSet struct {
	allUnderConstruction bool
	services             map[string]Price
	carriers             map[string]Price
}

// AllUnderConstruction reports the bulk maintenance flag. When set, every
// service for the model displays as under construction regardless of per-key
// entries.
func (o OverrideSet) AllUnderConstruction() bool { return o.allUnderConstruction }

// ForService returns the override for a service or sub-service id. The bulk
// flag is not consulted here; callers check AllUnderConstruction first.
func (o OverrideSet) ForService(id string) Price {
	return o.services[id]
}

// ForCarrier returns the SIM unlock override for a carrier id.
func (o OverrideSet) ForCarrier(carrierID string) Price {
	return o.carriers[carrierID]
}

// IsEmpty reports whether the set carries no overrides and no bulk flag.
func (o OverrideSet) IsEmpty() bool {
	return !o.allUnderConstruction && len(o.services) == 0 && len(o.carriers) == 0
}

// SetAllUnderConstruction sets or clears the bulk maintenance flag. Per-key
// entries are kept so clearing the flag restores them.
func (o *OverrideSet) SetAllUnderConstruction(v bool) {
	o.allUnderConstruction = v
}

// SetService records an override for a service or sub-service id. An unset
// price removes the entry.
func (o *OverrideSet) SetService(id string, p Price) {
	if p.IsUnset() {
		delete(o.services, id)
		return
	}
	if o.services == nil {
		o.services = make(map[string]Price)
	}
	o.services[id] = p
}

// SetCarrier records a SIM unlock override for a carrier id. An unset price
// removes the entry.
func (o *OverrideSet) SetCarrier(carrierID string, p Price) {
	if p.IsUnset() {
		delete(o.carriers, carrierID)
		return
	}
	if o.carriers == nil {
		o.carriers = make(map[string]Price)
	}
	o.carriers[carrierID] = p
}

// The wire format matches the stored document shape: the whole set is JSON
// null when all-under-construction, otherwise an object mapping ids to a
// number (explicit price) or null (under construction), with the SIM unlock
// key holding a nested carrier-id object of the same value shape. Unset
// entries are never stored.

// MarshalJSON implements json.Marshaler.
func (o OverrideSet) MarshalJSON() ([]byte, error) {
	if o.allUnderConstruction {
		return []byte("null"), nil
	}
	raw := make(map[string]json.RawMessage, len(o.services)+1)
	for id, p := range o.services {
		v, err := marshalOverridePrice(p)
		if err != nil {
			return nil, err
		}
		if v != nil {
			raw[id] = v
		}
	}
	if len(o.carriers) > 0 {
		nested := make(map[string]json.RawMessage, len(o.carriers))
		for id, p := range o.carriers {
			v, err := marshalOverridePrice(p)
			if err != nil {
				return nil, err
			}
			if v != nil {
				nested[id] = v
			}
		}
		v, err := json.Marshal(nested)
		if err != nil {
			return nil, err
		}
		raw[SIMUnlockServiceID] = v
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OverrideSet) UnmarshalJSON(data []byte) error {
	*o = OverrideSet{}
	if isJSONNull(data) {
		o.allUnderConstruction = true
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("price overrides: %w", err)
	}
	for id, v := range raw {
		if id == SIMUnlockServiceID && len(v) > 0 && v[0] == '{' {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(v, &nested); err != nil {
				return fmt.Errorf("carrier overrides: %w", err)
			}
			for carrierID, cv := range nested {
				p, err := unmarshalOverridePrice(cv)
				if err != nil {
					return err
				}
				o.SetCarrier(carrierID, p)
			}
			continue
		}
		p, err := unmarshalOverridePrice(v)
		if err != nil {
			return err
		}
		o.SetService(id, p)
	}
	return nil
}

func marshalOverridePrice(p Price) (json.RawMessage, error) {
	switch {
	case p.IsUnderConstruction():
		return json.RawMessage("null"), nil
	case p.IsSet():
		return json.Marshal(p.amount)
	default:
		return nil, nil
	}
}

func unmarshalOverridePrice(data []byte) (Price, error) {
	if isJSONNull(data) {
		return UnderConstruction(), nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return NoPrice(), fmt.Errorf("override price: %w", err)
	}
	return PriceOf(amount), nil
}

func isJSONNull(data []byte) bool {
	return string(data) == "null"
}
