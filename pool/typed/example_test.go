package typed_test

import (
	"fmt"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
	"github.com/buttception/RagdollEngine-sub001/pool/typed"
)

func ExampleVec() {
	p := pool.MustNew(pool.Config{BlockSize: 64, BlockCount: 16, Backing: pool.BackingHeap})
	defer p.Close()

	v := typed.NewVec[int32](typed.MustFor[int32](alloc.New(p)))
	for i := range 10 {
		_ = v.Push(int32(i * 10))
	}
	fmt.Println(v.Len(), v.At(9))
	_ = v.Release()
	fmt.Println(p.FreeBlocks())
	// Output:
	// 10 90
	// 16
}
