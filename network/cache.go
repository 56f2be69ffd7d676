package network

import (
	"encoding/gob"
	"fmt"
	"os"
)

// cachePayload is the serialized form of an Oracle: the (SP, SPL) pair from
// spec §6 "Shortest-path cache". The count (number of distinct oracle
// entries) is derived rather than stored, since gob already preserves map
// shape exactly.
type cachePayload struct {
	SP  map[int]map[int][]int
	SPL map[int]map[int]int
}

// SaveOracle writes o to path in a format that LoadOracle can read back
// to a structurally equal Oracle (spec §6: "the format must round-trip").
func SaveOracle(o *Oracle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("network: creating shortest-path cache: %w", err)
	}
	defer f.Close()

	payload := cachePayload{SP: o.sp, SPL: o.spl}
	if err := gob.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("network: encoding shortest-path cache: %w", err)
	}
	return nil
}

// LoadOracle reads a cache file written by SaveOracle. Callers should fall
// back to BuildOracle when the file does not exist (spec §6: "Read at tree
// construction if present; otherwise recomputed and written").
func LoadOracle(path string) (*Oracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload cachePayload
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("network: decoding shortest-path cache: %w", err)
	}
	return &Oracle{sp: payload.SP, spl: payload.SPL}, nil
}

// CacheExists reports whether a shortest-path cache file is present at path.
func CacheExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
