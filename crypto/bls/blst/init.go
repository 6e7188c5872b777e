package blst

import (
	"runtime"

	"github.com/dgraph-io/ristretto"
	blst "github.com/supranational/blst/bindings/go"
)

var maxKeys = int64(1000000)

var pubkeyCache *ristretto.Cache

func init() {
	// Reserve 1 core for general application work
	maxProcs := runtime.GOMAXPROCS(0) - 1
	if maxProcs <= 0 {
		maxProcs = 1
	}
	blst.SetMaxProcs(maxProcs)

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxKeys,
		MaxCost:     1 << 26, // ~64mb is cache max size
		BufferItems: 64,
	})
	if err != nil {
		panic("could not initiate public keys cache: " + err.Error())
	}
	pubkeyCache = cache
}
