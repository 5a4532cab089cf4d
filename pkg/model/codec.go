package model

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeDomain writes d as YAML.
func EncodeDomain(w io.Writer, d *Domain) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode domain: %w", err)
	}
	return enc.Close()
}

// DecodeDomain reads a YAML Domain and links its references.
func DecodeDomain(r io.Reader) (*Domain, error) {
	var d Domain
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode domain: %w", err)
	}
	if err := d.Link(); err != nil {
		return nil, err
	}
	return &d, nil
}
