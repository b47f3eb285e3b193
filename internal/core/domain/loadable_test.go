package domain_test

import (
	"sync"
	"testing"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

func TestLoadableRef_RevokeOnce(t *testing.T) {
	calls := 0
	ref := domain.NewLoadableRef("m1", func() { calls++ })

	if ref.Revoked() {
		t.Error("fresh ref reports revoked")
	}
	ref.Revoke()
	ref.Revoke()

	if calls != 1 {
		t.Errorf("revoke hook ran %d times", calls)
	}
	if !ref.Revoked() {
		t.Error("ref not marked revoked")
	}
	if ref.ID() != "m1" {
		t.Errorf("id = %q", ref.ID())
	}
}

func TestLoadableRef_ConcurrentRevoke(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	ref := domain.NewLoadableRef("m2", func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Revoke()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("revoke hook ran %d times", calls)
	}
}
