package availability

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"cloud.google.com/go/civil"
)

// Placeholder stands in for a real availability feed on the column view. It marks roughly
// Ratio of all slots open. Results are stable for a given seed so a slot rendered as open
// can still be picked on the next request.
type Placeholder struct {
	Seed  uint64
	Ratio float64
}

func (p Placeholder) Available(_ context.Context, date civil.Date, slot string) (bool, error) {
	if slot == "" {
		return p.Ratio > 0, nil
	}
	h := fnv.New64a()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], p.Seed)
	h.Write(seed[:])
	h.Write([]byte(date.String()))
	h.Write([]byte(slot))
	roll := float64(h.Sum64()%10000) / 10000
	return roll < p.Ratio, nil
}
