package utils

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerateAccountNumber(t *testing.T) {
	gen, err := NewAccountNumberGenerator("test-salt")
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	number, err := gen.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(number, "GEN") {
		t.Errorf("account number %q missing GEN prefix", number)
	}
	body := strings.TrimPrefix(number, "GEN")
	if len(body) < 10 {
		t.Errorf("account number %q too short", number)
	}
	for _, r := range body {
		if !strings.ContainsRune(accountNumberAlphabet, r) {
			t.Errorf("account number %q contains unexpected character %q", number, r)
		}
	}
}

func TestGenerateAccountNumberUnique(t *testing.T) {
	gen, err := NewAccountNumberGenerator("test-salt")
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		number, err := gen.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if seen[number] {
			t.Fatalf("duplicate account number after %d generations: %v", i, number)
		}
		seen[number] = true
	}
}

func TestGenerateAccountNumberConcurrent(t *testing.T) {
	// One generator serves every request handler goroutine, so concurrent
	// draws must stay safe and unique. Run with -race.
	gen, err := NewAccountNumberGenerator("test-salt")
	if err != nil {
		t.Fatal(err)
	}

	const workers, perWorker = 8, 100
	results := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				number, err := gen.Generate()
				if err != nil {
					t.Error(err)
					return
				}
				results <- number
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		if seen[number] {
			t.Fatalf("duplicate account number under concurrency: %v", number)
		}
		seen[number] = true
	}
}

func TestDifferentSaltsDiverge(t *testing.T) {
	// Two deployments with different salts shouldn't mint overlapping ranges.
	a, err := NewAccountNumberGenerator("salt-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewAccountNumberGenerator("salt-b")
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		na, err := a.Generate()
		if err != nil {
			t.Fatal(err)
		}
		nb, err := b.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if seen[na] || na == nb {
			t.Fatal("generators with different salts collided")
		}
		seen[na] = true
	}
}
