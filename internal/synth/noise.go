package synth

import (
	"math"
	"math/rand"
)

// Noise is seeded 2D simplex noise.
type Noise struct {
	perm [512]uint8
}

// NewNoise returns a noise field whose permutation table is shuffled by seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	r := rand.New(rand.NewSource(seed))
	p := r.Perm(256)
	for i := range n.perm {
		n.perm[i] = uint8(p[i&255])
	}
	return n
}

func grad(hash uint8, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// At returns the noise value at (x, y) in [-1, 1].
func (n *Noise) At(x, y float64) float64 {
	s := (x + y) * skew
	i := math.Floor(x + s)
	j := math.Floor(y + s)
	t := (i + j) * unskew

	x0 := x - (i - t)
	y0 := y - (j - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	corners := [3][2]float64{
		{x0, y0},
		{x0 - float64(i1) + unskew, y0 - float64(j1) + unskew},
		{x0 - 1 + 2*unskew, y0 - 1 + 2*unskew},
	}
	ii, jj := int(i)&255, int(j)&255
	hashes := [3]uint8{
		n.perm[ii+int(n.perm[jj])],
		n.perm[ii+i1+int(n.perm[jj+j1])],
		n.perm[ii+1+int(n.perm[jj+1])],
	}

	var sum float64
	for k, c := range corners {
		f := 0.5 - c[0]*c[0] - c[1]*c[1]
		if f <= 0 {
			continue
		}
		f *= f
		sum += f * f * grad(hashes[k], c[0], c[1])
	}
	return 70 * sum
}

// Octaves shapes fractal noise.
type Octaves struct {
	Frequency   float64
	Count       int
	Lacunarity  float64
	Persistence float64
}

// Fractal sums o.Count octaves and normalizes the result to [0, 1].
func (n *Noise) Fractal(x, y float64, o Octaves) float64 {
	var total, norm float64
	amp, freq := 1.0, o.Frequency
	for i := 0; i < o.Count; i++ {
		total += n.At(x*freq, y*freq) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0.5
	}
	return (total/norm + 1) / 2
}
