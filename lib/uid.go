package lib

import (
	"math/rand"
	"time"
)

func init() {
	rand.Seed(time.Now().UnixMilli())
}

// NewUIDValidity returns a random UIDVALIDITY value: never zero
func NewUIDValidity() uint32 {
	for {
		if uid := rand.Uint32(); uid > 0 {
			return uid
		}
	}
}
