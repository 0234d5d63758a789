package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotFound signals that a province, district or ward name has no entry in
// the dataset. Callers treat it as a recoverable "could not map address"
// condition.
var ErrNotFound = errors.New("location not found")

// Codes are the provider-specific identifiers the shipping service expects,
// distinct from the human-readable names.
type Codes struct {
	ProvinceID int    `json:"province_id"`
	DistrictID int    `json:"district_id"`
	WardCode   string `json:"ward_code"`
}

type ward struct {
	WardName string `json:"WardName"`
}

type district struct {
	DistrictName string          `json:"DistrictName"`
	Wards        map[string]ward `json:"Wards"`
}

type province struct {
	ProvinceName string              `json:"ProvinceName"`
	Districts    map[string]district `json:"Districts"`
}

// Resolver maps free-text address names to location codes using a static
// hierarchical dataset loaded once at startup.
type Resolver struct {
	provinces map[string]province
}

// NewResolver reads the province dataset from path and keeps it in memory.
func NewResolver(path string) (*Resolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read province dataset: %w", err)
	}

	var provinces map[string]province
	if err := json.Unmarshal(raw, &provinces); err != nil {
		return nil, fmt.Errorf("parse province dataset: %w", err)
	}

	return &Resolver{provinces: provinces}, nil
}

// Resolve looks up province, district and ward names case-insensitively and
// returns their codes. Any unmatched level yields ErrNotFound.
func (r *Resolver) Resolve(provinceName, districtName, wardName string) (Codes, error) {
	provinceID, prov, ok := r.findProvince(provinceName)
	if !ok {
		return Codes{}, fmt.Errorf("province %q: %w", provinceName, ErrNotFound)
	}

	districtID, dist, ok := findDistrict(prov, districtName)
	if !ok {
		return Codes{}, fmt.Errorf("district %q: %w", districtName, ErrNotFound)
	}

	wardCode, ok := findWard(dist, wardName)
	if !ok {
		return Codes{}, fmt.Errorf("ward %q: %w", wardName, ErrNotFound)
	}

	return Codes{
		ProvinceID: provinceID,
		DistrictID: districtID,
		WardCode:   wardCode,
	}, nil
}

func (r *Resolver) findProvince(name string) (int, province, bool) {
	for id, prov := range r.provinces {
		if strings.EqualFold(prov.ProvinceName, name) {
			parsed, err := strconv.Atoi(id)
			if err != nil {
				continue
			}
			return parsed, prov, true
		}
	}
	return 0, province{}, false
}

func findDistrict(prov province, name string) (int, district, bool) {
	for id, dist := range prov.Districts {
		if strings.EqualFold(dist.DistrictName, name) {
			parsed, err := strconv.Atoi(id)
			if err != nil {
				continue
			}
			return parsed, dist, true
		}
	}
	return 0, district{}, false
}

func findWard(dist district, name string) (string, bool) {
	for code, w := range dist.Wards {
		if strings.EqualFold(w.WardName, name) {
			return code, true
		}
	}
	return "", false
}
