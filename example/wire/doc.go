// Package wire holds views generated from wire.yaml.
package wire

//go:generate go run github.com/alexhholmes/evgen/cmd/evgen -config evgen.toml
