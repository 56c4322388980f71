package kmst

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/kmst/core"
)

// networkSpace namespaces network fingerprints.
var networkSpace = uuid.MustParse("6f1d3a52-8c0e-4b7a-9d35-0c2e51f7a9b4")

// NetworkID fingerprints a node set: the name-based (SHA-1) UUID of the
// root and candidate coordinates in order. Equal inputs give equal ids;
// -0 and +0 are not told apart.
func NetworkID(root core.Point, candidates []core.Point) string {
	buf := make([]byte, 0, 16*(len(candidates)+1))
	put := func(p core.Point) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X+0))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y+0))
	}
	put(root)
	for _, p := range candidates {
		put(p)
	}

	return uuid.NewSHA1(networkSpace, buf).String()
}
