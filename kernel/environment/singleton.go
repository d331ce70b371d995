package environment

import "sync"

var (
	once     sync.Once
	instance *Environment
)

// Init allocates the process-wide Environment singleton. It is safe to
// call more than once — only the first call takes effect, matching
// vector 0xFF's single-threaded allocation (spec.md §4.8/§9) — but
// callers should normally call it exactly once, at kernel init.
func Init() *Environment {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// Get returns the singleton Environment. It panics if Init has not
// been called yet, since there is no sensible fallback for "no
// environment" in a running kernel (spec.md §9: "Public access is via
// a free function env()... enforce initialization with a one-shot
// cell").
func Get() *Environment {
	if instance == nil {
		panic("environment: Get called before Init")
	}
	return instance
}

// reset is a test-only helper that clears the singleton so each test
// can Init its own Environment.
func reset() {
	once = sync.Once{}
	instance = nil
}
