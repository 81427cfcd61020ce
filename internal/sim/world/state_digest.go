package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// stateDigest hashes everything that influences future ticks, in collection order.
func (w *World) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	digestWriteU64(h, &tmp, uint64(len(w.objects)))
	for _, o := range w.objects {
		h.Write([]byte(o.ID()))
		h.Write([]byte{0})
		p := o.Position()
		digestWriteF64(h, &tmp, p.X)
		digestWriteF64(h, &tmp, p.Y)
		switch v := o.(type) {
		case *Agent:
			digestWriteF64(h, &tmp, v.direction.X)
			digestWriteF64(h, &tmp, v.direction.Y)
			digestWriteF64(h, &tmp, v.energy)
			digestWriteF64(h, &tmp, v.carried)
			digestWriteF64(h, &tmp, v.trailStrength)
		case *Resource:
			digestWriteF64(h, &tmp, v.quantity)
		case *Base:
			digestWriteF64(h, &tmp, v.stock)
		case *Trail:
			digestWriteF64(h, &tmp, v.strength)
			digestWriteU64(h, &tmp, v.lastReinforced)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}
