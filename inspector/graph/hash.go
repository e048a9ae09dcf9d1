package graph

import (
	"github.com/minio/highwayhash"
)

var digestKey = []byte("makegraph-content-digest-key-v01")

// Digest returns a stable content digest for a Makefile, reported in the
// analysis summary so consumers can tell what was analyzed.
func Digest(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
