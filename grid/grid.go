package grid

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Options configures a partition run.
type Options struct {
	// Capacity is the target maximum number of points per bucket. Buckets
	// may exceed it when many points share a grid cell.
	Capacity int
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	Capacity: 512,
}

// Result is a partition of an index subset into spatially local buckets.
// Indices is a permutation of the input indices grouped bucket by bucket;
// Offsets (len BucketCount+1) delimits the buckets within it. Buckets are
// ordered by first appearance in the input.
type Result struct {
	Offsets []int32
	Indices []int32
}

// BucketCount returns the number of buckets.
func (r Result) BucketCount() int { return len(r.Offsets) - 1 }

// Bucket returns the indices of bucket i. The slice aliases Result storage.
func (r Result) Bucket(i int) []int32 {
	return r.Indices[r.Offsets[i]:r.Offsets[i+1]]
}

// Partition buckets the points selected by indices out of the parallel
// coordinate arrays x, y, z. Inputs of size 0 or 1, and inputs no larger
// than the capacity, yield at most one bucket.
func Partition(x, y, z []float32, indices []int32, optFns ...func(o *Options)) Result {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Capacity < 1 {
		opts.Capacity = 1
	}

	n := len(indices)
	if n == 0 {
		return Result{Offsets: []int32{0}}
	}
	if n <= opts.Capacity {
		out := make([]int32, n)
		copy(out, indices)
		return Result{Offsets: []int32{0, int32(n)}, Indices: out}
	}

	xs := gather(x, indices)
	ys := gather(y, indices)
	zs := gather(z, indices)

	minX, maxX := vek32.Min(xs), vek32.Max(xs)
	minY, maxY := vek32.Min(ys), vek32.Max(ys)
	minZ, maxZ := vek32.Min(zs), vek32.Max(zs)

	// Enough cells per axis so the average cell stays under capacity.
	targetCells := (n + opts.Capacity - 1) / opts.Capacity
	d := int(math.Ceil(math.Cbrt(float64(targetCells))))
	if d < 1 {
		d = 1
	}

	cellOf := func(i int) int32 {
		cx := cellAxis(xs[i], minX, maxX, d)
		cy := cellAxis(ys[i], minY, maxY, d)
		cz := cellAxis(zs[i], minZ, maxZ, d)
		return (cx*int32(d)+cy)*int32(d) + cz
	}

	// First pass: assign cells, map each occupied cell to a bucket in
	// first-seen order, count sizes.
	bucketOf := make(map[int32]int32, targetCells)
	assignment := make([]int32, n)
	var sizes []int32
	for i := 0; i < n; i++ {
		cell := cellOf(i)
		bucket, ok := bucketOf[cell]
		if !ok {
			bucket = int32(len(sizes))
			bucketOf[cell] = bucket
			sizes = append(sizes, 0)
		}
		assignment[i] = bucket
		sizes[bucket]++
	}

	offsets := make([]int32, len(sizes)+1)
	for b, size := range sizes {
		offsets[b+1] = offsets[b] + size
	}

	// Second pass: stable scatter into bucket order.
	out := make([]int32, n)
	cursor := make([]int32, len(sizes))
	copy(cursor, offsets[:len(sizes)])
	for i := 0; i < n; i++ {
		b := assignment[i]
		out[cursor[b]] = indices[i]
		cursor[b]++
	}

	return Result{Offsets: offsets, Indices: out}
}

func gather(coords []float32, indices []int32) []float32 {
	out := make([]float32, len(indices))
	for i, idx := range indices {
		out[i] = coords[idx]
	}
	return out
}

func cellAxis(v, lo, hi float32, d int) int32 {
	ext := hi - lo
	if ext <= 0 {
		return 0
	}
	c := int32(float64(v-lo) / float64(ext) * float64(d))
	if c >= int32(d) {
		c = int32(d) - 1
	}
	return c
}
