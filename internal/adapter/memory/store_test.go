package memory

import (
	"testing"

	"trxclicker/internal/adapter/storetest"
	"trxclicker/internal/core/port"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(*testing.T) port.Store { return NewStore() })
}
