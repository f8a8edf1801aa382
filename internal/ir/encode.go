package ir

import "github.com/dekarrin/rezi"

// EncodeModule serializes mod to the binary wire form handed to a backend
// (spec.md §6's core-to-backend interface), the same `rezi.EncBinary` call
// the teacher's session store uses to persist its own serializable game
// state (server/dao/sqlite/sessions.go).
func EncodeModule(mod *Module) []byte {
	return rezi.EncBinary(mod)
}

// DecodeModule reverses EncodeModule, mirroring the teacher's
// `rezi.DecBinary` round trip.
func DecodeModule(data []byte) (*Module, error) {
	mod := &Module{}
	if _, err := rezi.DecBinary(data, mod); err != nil {
		return nil, err
	}
	return mod, nil
}
