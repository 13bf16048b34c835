// Package liquidity implements the failover poll cycle over the source
// registry and the atomically replaced snapshot it produces.
package liquidity

import (
	"encoding/json"

	"sol-watchtower/internal/fetch"
)

// Shape tags the recognized upstream payload layouts.
type Shape string

const (
	// ShapeKeyed is {"<address>": "<pair>", ...}; the count is the number
	// of keys (Raydium pairs endpoint).
	ShapeKeyed Shape = "keyed"
	// ShapePairs is {"pairs": [...]} (DexScreener).
	ShapePairs Shape = "pairs"
	// ShapeData is {"data": [...]} (GeckoTerminal).
	ShapeData Shape = "data"
	// ShapeUnknown is any other layout: count 0, usable=false, not an
	// error.
	ShapeUnknown Shape = "unknown"
)

// Payload is the parsed view of one liquidity response.
type Payload struct {
	Shape     Shape
	Count     int
	Addresses []string
}

type pairEntry struct {
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
	} `json:"baseToken"`
}

type dataEntry struct {
	ID         string `json:"id"`
	Attributes struct {
		Address string `json:"address"`
	} `json:"attributes"`
}

// Parse decodes a liquidity payload into one of the known shapes. Bytes
// that are not JSON at all, including bodies cut short by the byte cap,
// are a ParseError; valid JSON that matches no known shape (a top-level
// array, a bare string) is ShapeUnknown with count 0, which is not an
// error.
func Parse(sourceName string, body []byte) (Payload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		if json.Valid(body) {
			return Payload{Shape: ShapeUnknown}, nil
		}
		return Payload{Shape: ShapeUnknown}, &fetch.ParseError{Source: sourceName, Err: err}
	}

	if raw, ok := top["pairs"]; ok {
		var pairs []pairEntry
		if err := json.Unmarshal(raw, &pairs); err == nil {
			p := Payload{Shape: ShapePairs, Count: len(pairs)}
			for _, e := range pairs {
				switch {
				case e.PairAddress != "":
					p.Addresses = append(p.Addresses, e.PairAddress)
				case e.BaseToken.Address != "":
					p.Addresses = append(p.Addresses, e.BaseToken.Address)
				}
			}
			return p, nil
		}
		return Payload{Shape: ShapeUnknown}, nil
	}

	if raw, ok := top["data"]; ok {
		var entries []dataEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			p := Payload{Shape: ShapeData, Count: len(entries)}
			for _, e := range entries {
				switch {
				case e.Attributes.Address != "":
					p.Addresses = append(p.Addresses, e.Attributes.Address)
				case e.ID != "":
					p.Addresses = append(p.Addresses, e.ID)
				}
			}
			return p, nil
		}
		return Payload{Shape: ShapeUnknown}, nil
	}

	// Keyed map: every value must be a plain string.
	keyed := Payload{Shape: ShapeKeyed}
	for key, raw := range top {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return Payload{Shape: ShapeUnknown}, nil
		}
		keyed.Count++
		keyed.Addresses = append(keyed.Addresses, key)
	}
	return keyed, nil
}
