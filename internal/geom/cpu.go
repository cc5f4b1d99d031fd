package geom

import "golang.org/x/sys/cpu"

// useSIMD routes float32/float64 arithmetic through the vek kernels.
// vek only ships accelerated kernels for AVX2 with FMA.
var useSIMD = cpu.X86.HasAVX2 && cpu.X86.HasFMA
