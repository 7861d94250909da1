/*
Package resilience provides a circuit breaker for calls to external
dependencies such as the mappings database.

# States

- Closed: requests pass through and failures are counted
- Open: requests fail immediately with ErrCircuitOpen
- Half-Open: a limited number of probes decide whether to close again

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open

# Usage

	breaker := resilience.New("mappings", resilience.Settings{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
	})

	mappings, err := resilience.Call(ctx, breaker, func(ctx context.Context) ([]mapping.Mapping, error) {
		return store.List(ctx, version)
	})

Cancellation of the caller's context is not treated as a dependency failure.
*/
package resilience
