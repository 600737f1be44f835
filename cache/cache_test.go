package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/ssaharsh1/quoted-llmo/models"
)

func TestKey_IdentityIsPartOfKey(t *testing.T) {
	a := Key("https://example.com/post", "gptbot")
	b := Key("https://example.com/post", "claude")
	c := Key("https://example.com/post", "gptbot")

	if a == b {
		t.Error("same URL under different identities should produce different keys")
	}
	if a != c {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestMemory_HitAndMiss(t *testing.T) {
	m := NewMemory(10, time.Minute)
	report := &models.AuditReport{OverallScore: 82}

	if _, hit := m.Get("k"); hit {
		t.Error("empty store should miss")
	}

	m.Put("k", report, 0)
	got, hit := m.Get("k")
	if !hit {
		t.Fatal("stored key should hit")
	}
	if got.OverallScore != 82 {
		t.Errorf("score = %d, want 82", got.OverallScore)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	m := NewMemory(10, time.Minute)
	m.Put("k", &models.AuditReport{}, 50*time.Millisecond)

	time.Sleep(80 * time.Millisecond)

	if _, hit := m.Get("k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestMemory_ZeroTTLUsesDefault(t *testing.T) {
	m := NewMemory(10, 50*time.Millisecond)
	m.Put("k", &models.AuditReport{}, 0)

	if _, hit := m.Get("k"); !hit {
		t.Error("fresh entry should hit")
	}

	time.Sleep(80 * time.Millisecond)

	if _, hit := m.Get("k"); hit {
		t.Error("entry should expire at the default TTL")
	}
}

func TestMemory_CapacityEvictsOldestFirst(t *testing.T) {
	m := NewMemory(3, time.Minute)
	for i := 0; i < 4; i++ {
		m.Put(fmt.Sprintf("k%d", i), &models.AuditReport{OverallScore: i}, 0)
		time.Sleep(time.Millisecond)
	}

	if _, hit := m.Get("k0"); hit {
		t.Error("oldest entry should be evicted at capacity")
	}
	for i := 1; i < 4; i++ {
		if _, hit := m.Get(fmt.Sprintf("k%d", i)); !hit {
			t.Errorf("k%d should survive eviction", i)
		}
	}
}

func TestMemory_EvictOldest(t *testing.T) {
	m := NewMemory(10, time.Minute)
	for i := 0; i < 5; i++ {
		m.Put(fmt.Sprintf("k%d", i), &models.AuditReport{}, 0)
		time.Sleep(time.Millisecond)
	}

	m.EvictOldest(2)

	for i := 0; i < 2; i++ {
		if _, hit := m.Get(fmt.Sprintf("k%d", i)); hit {
			t.Errorf("k%d should have been evicted", i)
		}
	}
	for i := 2; i < 5; i++ {
		if _, hit := m.Get(fmt.Sprintf("k%d", i)); !hit {
			t.Errorf("k%d should remain", i)
		}
	}

	// Requests beyond the store size drain it without panicking.
	m.EvictOldest(100)
	if _, hit := m.Get("k4"); hit {
		t.Error("store should be empty after draining eviction")
	}
}
