package memory

import (
	"testing"

	"github.com/kachalmers/tuiter/server/internal/store"
	"github.com/kachalmers/tuiter/server/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
