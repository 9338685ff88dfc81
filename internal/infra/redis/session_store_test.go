package redis

import (
	"testing"
	"time"

	"eq-assessment-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	_ = store.GetOrCreate("u1", domain.DefaultBank().Questions)
	if !mr.Exists("assessment:session:u1") {
		t.Fatalf("expected redis key to be set")
	}

	store.Delete("u1")
	if mr.Exists("assessment:session:u1") {
		t.Fatalf("expected redis key to be removed")
	}
}
