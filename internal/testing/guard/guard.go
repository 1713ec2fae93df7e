package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("FLUXO_TEST_MODE") == "" {
			_ = os.Setenv("FLUXO_TEST_MODE", "1")
		}
	})
}
